package parser

// Selectors of the origin markup. The site does not version its pages, so a
// change here is the first thing to check when the pipeline starts failing.
const (
	searchResultSelector = ".last_episodes > ul > li .img a"
	episodePagerSelector = "#episode_page a.active"
	movieIDSelector      = "input#movie_id"
	episodeLinkSelector  = "#episode_related > li > a"
	playerIframeSelector = ".play-video > iframe"
)
