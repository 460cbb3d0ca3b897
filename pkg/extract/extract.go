// Package extract finds Pivotal Tracker story references in free-form
// message text.
package extract

import "regexp"

// storyPattern matches the two URL shapes Tracker hands out for a story.
// Exactly one capture group is non-empty per match, and both groups
// require at least one digit, so a shape match always carries an id.
var storyPattern = regexp.MustCompile(`pivotaltracker\.com/projects/\d+/stories/(\d+)|pivotaltracker\.com/story/show/(\d+)`)

// StoryIDs returns the story ids referenced in text, deduplicated by
// value, in order of first appearance. A text without references yields
// a nil slice.
func StoryIDs(text string) []string {
	matches := storyPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(matches))
	ids := make([]string, 0, len(matches))
	for _, match := range matches {
		id := match[1]
		if id == "" {
			id = match[2]
		}

		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	if len(ids) == 0 {
		return nil
	}

	return ids
}
