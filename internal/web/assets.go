package web

import (
	"path/filepath"
	"strconv"
	"strings"

	"spaceexplorer/internal/game"
)

const assetCacheControl = "public, max-age=3600"

// levelFromPath resolves the {index} path value to a catalog level.
func (s *Server) levelFromPath(raw string) (*game.Level, bool) {
	index, err := strconv.Atoi(raw)
	if err != nil || s.Engine == nil {
		return nil, false
	}
	lvl := s.Engine.Catalog.Level(index)
	return lvl, lvl != nil
}

// assetCandidates validates filename and returns possible paths for it under
// <AssetsDir>/<subdir>: the name itself, then the name with each extension.
func (s *Server) assetCandidates(subdir, filename string, extensions []string) ([]string, bool) {
	if s.AssetsDir == "" || filename == "" {
		return nil, false
	}
	safeFilename := filepath.Clean(filename)
	if safeFilename == "" || safeFilename == "." || strings.Contains(safeFilename, "..") ||
		filepath.IsAbs(safeFilename) || strings.Contains(safeFilename, string(filepath.Separator)) {
		return nil, false
	}

	baseDir := filepath.Join(s.AssetsDir, subdir)
	resolved := filepath.Join(baseDir, safeFilename)
	rel, err := filepath.Rel(baseDir, resolved)
	if err != nil || strings.Contains(rel, "..") {
		return nil, false
	}

	candidates := []string{resolved}
	if filepath.Ext(safeFilename) == "" {
		for _, ext := range extensions {
			candidates = append(candidates, resolved+ext)
		}
	}
	return candidates, true
}
