package shortcut

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"winlaunch/internal/fileutil"
)

// IconSizes lists the container icon directories searched for Icon=, largest first.
var IconSizes = []int{64, 48, 32, 16}

const coverArtSubdir = "app_data/cover_arts"

// resolveIcon prefers a decodable custom override named after the shortcut,
// then the first Icon= match across the container icon directories.
func (r *Record) resolveIcon() {
	if r.iconName != "" && r.container != nil {
		for _, size := range IconSizes {
			dir := r.container.IconsDir(size)
			candidate := filepath.Join(dir, r.iconName+".png")
			if _, err := os.Stat(candidate); err != nil {
				candidate = filepath.Join(dir, r.iconName+".ico")
			}
			if fileutil.IsRegularFile(candidate) {
				r.iconFile = candidate
				break
			}
		}
	}

	if r.layout.CustomIconsDir != "" {
		custom := filepath.Join(r.layout.CustomIconsDir, r.name+".png")
		if decodable(custom) {
			r.iconFile = custom
		}
	}
}

func (r *Record) loadCoverArt() {
	r.coverArt = ""
	if r.customCoverArtPath != "" && decodable(r.customCoverArtPath) {
		r.coverArt = r.customCoverArtPath
		return
	}
	if dir := r.coverArtDir(); dir != "" {
		fallback := filepath.Join(dir, r.name+".png")
		if decodable(fallback) {
			r.coverArt = fallback
		}
	}
}

func (r *Record) coverArtDir() string {
	if r.layout.CoverArtDir != "" {
		return r.layout.CoverArtDir
	}
	if r.container == nil || r.container.RootDir() == "" {
		return ""
	}
	return filepath.Join(r.container.RootDir(), coverArtSubdir)
}

// decodable reports whether path is a regular file holding an image in a
// registered format.
func decodable(path string) bool {
	if !fileutil.IsRegularFile(path) {
		return false
	}
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	_, _, err = image.DecodeConfig(f)
	return err == nil
}
