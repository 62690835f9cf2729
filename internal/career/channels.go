package career

import (
	"regexp"
	"strings"

	"github.com/muhammadolammi/careerpilot/internal/apperr"
)

type Channel struct {
	Name        string `json:"name"`
	Link        string `json:"link"`
	Description string `json:"description"`
}

var (
	channelStartRe = regexp.MustCompile(`^\d+\.\s*`)
	urlRe          = regexp.MustCompile(`https?://\S+`)
)

// ParseChannels reads the numbered list the channels prompt asks for. A
// numbered line opens a channel, a line mentioning YouTube sets its link and
// any other line extends its description. Text before the first numbered
// line is ignored.
func ParseChannels(text string) ([]Channel, error) {
	var (
		channels []Channel
		current  *Channel
	)
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		switch {
		case line == "":
			continue
		case channelStartRe.MatchString(line):
			if current != nil {
				channels = append(channels, *current)
			}
			current = &Channel{Name: cleanName(channelStartRe.ReplaceAllString(line, ""))}
		case current == nil:
			continue
		case strings.Contains(line, "youtube.com") || strings.Contains(line, "youtu.be"):
			if url := urlRe.FindString(line); url != "" {
				current.Link = strings.TrimRight(url, ").,;]*>")
			}
		default:
			if current.Description != "" {
				current.Description += " "
			}
			current.Description += line
		}
	}
	if current != nil {
		channels = append(channels, *current)
	}

	if len(channels) == 0 {
		return nil, &apperr.ParseError{What: "YouTube channels", Message: "no numbered channel entries in response"}
	}
	return channels, nil
}

func cleanName(name string) string {
	return strings.TrimSpace(strings.ReplaceAll(name, "**", ""))
}
