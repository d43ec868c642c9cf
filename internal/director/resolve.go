package director

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"filmcraft/internal/store"
)

// sortScenes orders scenes by OrderIndex, then ID.
func sortScenes(scenes []store.Scene) {
	sort.SliceStable(scenes, func(i, j int) bool {
		if scenes[i].OrderIndex != scenes[j].OrderIndex {
			return scenes[i].OrderIndex < scenes[j].OrderIndex
		}
		return scenes[i].ID < scenes[j].ID
	})
}

// FindScene resolves a user reference such as "Scene 3", "the chase" or "3"
// against scenes in running order. Rules are tried in order and the first
// match wins:
//
//  1. the first run of digits n selects the scene with OrderIndex+1 == n
//  2. otherwise the first scene whose title contains that digit run
//  3. a case-insensitive substring match in either direction between the
//     reference and the title
//
// Nothing matching is reported as not found; there is no fallback scene.
func FindScene(scenes []store.Scene, ref string) (store.Scene, bool) {
	ordered := append([]store.Scene(nil), scenes...)
	sortScenes(ordered)

	if digits := digitRun.FindString(ref); digits != "" {
		if n, err := strconv.Atoi(digits); err == nil {
			for _, s := range ordered {
				if s.OrderIndex+1 == n {
					return s, true
				}
			}
		}
		for _, s := range ordered {
			if strings.Contains(s.Title, digits) {
				return s, true
			}
		}
	}

	needle := strings.ToLower(strings.TrimSpace(ref))
	if needle == "" {
		return store.Scene{}, false
	}
	for _, s := range ordered {
		title := strings.ToLower(strings.TrimSpace(s.Title))
		if title == "" {
			continue
		}
		if strings.Contains(title, needle) || strings.Contains(needle, title) {
			return s, true
		}
	}
	return store.Scene{}, false
}

var digitRun = regexp.MustCompile(`[0-9]+`)

func sceneNotFound(ref string) string {
	return fmt.Sprintf("Could not find scene %q", ref)
}
