package web

import (
	"io/fs"
	"testing"
)

func TestStaticContainsAssets(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"css/portfolio.css", "js/appearance.js", "js/portfolio.js"} {
		info, err := fs.Stat(Static(), name)
		if err != nil {
			t.Fatalf("expected %s to be embedded: %v", name, err)
		}
		if info.Size() == 0 {
			t.Fatalf("expected %s to have content", name)
		}
	}
}
