package testutil

import (
	"fmt"
	"html"
	"strings"
)

// StrPtr is a helper for creating *string values in tests
func StrPtr(v string) *string {
	return &v
}

// SearchResultOptions describes one entry of the search result list.
// A nil Href or Title omits the attribute entirely.
type SearchResultOptions struct {
	Href  *string
	Title *string
	Image string
}

// GenerateSearchHTML generates a search result page modelled on the origin's
// "last_episodes" list
func GenerateSearchHTML(results []SearchResultOptions) string {
	var sb strings.Builder

	sb.WriteString(`<html>
<head><title>Search</title></head>
<body>
<div class="main_body">
	<div class="anime_name anime_list"><h2>Search result</h2></div>
	<div class="last_episodes">
		<ul class="items">
`)

	for _, r := range results {
		image := r.Image
		if image == "" {
			image = "https://cdn.test/cover/placeholder.png"
		}

		sb.WriteString("\t\t\t<li>\n\t\t\t\t<div class=\"img\">\n\t\t\t\t\t<a")
		if r.Href != nil {
			fmt.Fprintf(&sb, ` href="%s"`, html.EscapeString(*r.Href))
		}
		if r.Title != nil {
			fmt.Fprintf(&sb, ` title="%s"`, html.EscapeString(*r.Title))
		}
		fmt.Fprintf(&sb, "><img src=\"%s\" /></a>\n\t\t\t\t</div>\n", image)
		if r.Title != nil {
			fmt.Fprintf(&sb, "\t\t\t\t<p class=\"name\"><a>%s</a></p>\n", html.EscapeString(*r.Title))
		}
		sb.WriteString("\t\t\t</li>\n")
	}

	sb.WriteString(`		</ul>
	</div>
</div>
</body>
</html>`)

	return sb.String()
}

// PagerBlock is one anchor of the episode pager on a category page.
// Empty EpStart/EpEnd omit the attribute.
type PagerBlock struct {
	EpStart string
	EpEnd   string
	Active  bool
}

// CategoryPageOptions describes a series category page
type CategoryPageOptions struct {
	Title        string
	Pager        []PagerBlock
	MovieID      *string // nil omits the input element
	AliasAnimeID string
}

// GenerateCategoryHTML generates a series category page with the episode pager
// and the hidden inputs the listing endpoint is keyed on
func GenerateCategoryHTML(opts CategoryPageOptions) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, `<html>
<body>
<div class="anime_info_body">
	<h1>%s</h1>
</div>
<div class="anime_video_body">
	<ul id="episode_page">
`, html.EscapeString(opts.Title))

	for _, block := range opts.Pager {
		sb.WriteString("\t\t<li><a href=\"#\"")
		if block.Active {
			sb.WriteString(` class="active"`)
		}
		if block.EpStart != "" {
			fmt.Fprintf(&sb, ` ep_start="%s"`, block.EpStart)
		}
		if block.EpEnd != "" {
			fmt.Fprintf(&sb, ` ep_end="%s"`, block.EpEnd)
		}
		fmt.Fprintf(&sb, ">%s-%s</a></li>\n", block.EpStart, block.EpEnd)
	}

	sb.WriteString("\t</ul>\n")
	if opts.MovieID != nil {
		fmt.Fprintf(&sb, "\t<input class=\"movie_id\" id=\"movie_id\" value=\"%s\" type=\"hidden\" />\n", html.EscapeString(*opts.MovieID))
	}
	if opts.AliasAnimeID != "" {
		fmt.Fprintf(&sb, "\t<input class=\"alias_anime\" id=\"alias_anime\" value=\"%s\" type=\"hidden\" />\n", opts.AliasAnimeID)
	}
	sb.WriteString(`	<div id="load_ep"></div>
</div>
</body>
</html>`)

	return sb.String()
}

// GenerateEpisodeListHTML generates the fragment returned by the episode listing
// endpoint. A nil entry renders an anchor without href.
func GenerateEpisodeListHTML(hrefs []*string) string {
	var sb strings.Builder

	sb.WriteString("<ul id=\"episode_related\">\n")
	for i, href := range hrefs {
		sb.WriteString("\t<li>\n\t\t<a")
		if href != nil {
			fmt.Fprintf(&sb, ` href="%s"`, html.EscapeString(*href))
		}
		fmt.Fprintf(&sb, ">\n\t\t\t<div class=\"name\"><span>EP</span> %d</div>\n\t\t\t<div class=\"cate\">SUB</div>\n\t\t</a>\n\t</li>\n", len(hrefs)-i)
	}
	sb.WriteString("</ul>\n")

	return sb.String()
}

// GenerateEpisodePageHTML generates an episode page. An empty iframeSrc renders
// the player container without an iframe.
func GenerateEpisodePageHTML(title, iframeSrc string) string {
	player := "\t\t<p>Video unavailable</p>\n"
	if iframeSrc != "" {
		player = fmt.Sprintf("\t\t<iframe src=\"%s\" allowfullscreen=\"true\" frameborder=\"0\" marginwidth=\"0\" marginheight=\"0\" scrolling=\"no\"></iframe>\n", html.EscapeString(iframeSrc))
	}

	return fmt.Sprintf(`<html>
<body>
<div class="anime_video_body">
	<h1>%s</h1>
	<div class="anime_video_body_watch_items load">
		<div class="play-video">
%s		</div>
	</div>
</div>
</body>
</html>`, html.EscapeString(title), player)
}

// GenerateSourceListJSON generates a source lookup response listing files in order
func GenerateSourceListJSON(files []string) string {
	entries := make([]string, len(files))
	for i, f := range files {
		entries[i] = fmt.Sprintf(`{"file":%q,"label":"HD P","type":"mp4"}`, f)
	}
	return fmt.Sprintf(`{"source":[%s],"source_bk":[],"track":[],"advertising":[],"linkiframe":""}`, strings.Join(entries, ","))
}
