package web

import (
	"bytes"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"spaceexplorer/internal/audio"
)

// audioExtensions lists file extensions to try when the YAML value has no extension.
var audioExtensions = []string{".mp3", ".ogg", ".wav", ".m4a"}

// Content types for audio (used in handler and tests).
const (
	contentTypeMP3 = "audio/mpeg"
	contentTypeOGG = "audio/ogg"
	contentTypeWAV = "audio/wav"
	contentTypeM4A = "audio/mp4"
)

var serverStart = time.Now()

// handleCue serves a synthesized cue as WAV. URL shape: /audio/cues/<cue>.
func (s *Server) handleCue(w http.ResponseWriter, r *http.Request) {
	c, ok := audio.ParseCue(r.PathValue("cue"))
	if !ok || s.Audio == nil {
		http.NotFound(w, r)
		return
	}
	b, err := s.Audio.WAV(c)
	if err != nil {
		// Cues are decoration; a failed one is logged and skipped.
		log.Printf("cue synthesis failed cue=%s error=%v", c, err)
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", contentTypeWAV)
	w.Header().Set("Cache-Control", assetCacheControl)
	http.ServeContent(w, r, string(c)+".wav", serverStart, bytes.NewReader(b))
}

// handleNameAudio serves the spoken planet name from <AssetsDir>/names/.
// URL shape: /audio/names/<index>; the file is the level's nameAudio value,
// and the server tries .mp3, .ogg, .wav, .m4a when it has no extension.
func (s *Server) handleNameAudio(w http.ResponseWriter, r *http.Request) {
	lvl, ok := s.levelFromPath(r.PathValue("index"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	candidates, ok := s.assetCandidates("names", lvl.NameAudio, audioExtensions)
	if !ok {
		http.NotFound(w, r)
		return
	}

	var file *os.File
	var fileInfo os.FileInfo
	var filePath string
	for _, p := range candidates {
		f, err := os.Open(p) // #nosec G304 -- p is under validated baseDir (<assets>/names)
		if err != nil {
			continue
		}
		info, err := f.Stat()
		if err != nil || info.IsDir() {
			_ = f.Close()
			continue
		}
		file = f
		fileInfo = info
		filePath = p
		break
	}
	if file == nil {
		http.NotFound(w, r)
		return
	}
	defer file.Close()

	w.Header().Set("Content-Type", audioContentType(filePath))
	w.Header().Set("Cache-Control", assetCacheControl)
	http.ServeContent(w, r, filepath.Base(filePath), fileInfo.ModTime(), file)
}

func audioContentType(p string) string {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".ogg":
		return contentTypeOGG
	case ".wav":
		return contentTypeWAV
	case ".m4a":
		return contentTypeM4A
	default:
		return contentTypeMP3
	}
}
