package core

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/huangsam/protopair/internal/contract"
	"github.com/huangsam/protopair/schema"
)

// protoDependencyMarkers are substrings that indicate a protobuf dependency
// in build files or source, per ecosystem.
var protoDependencyMarkers = []string{
	"com.google.protobuf",        // Java
	"io.grpc.protobuf",           // Java
	"google.golang.org/protobuf", // Go
	"github.com/golang/protobuf", // Go
	"google.protobuf",            // Python / others
	"protobuf-java",              // Maven dep
	"grpc-protobuf",              // Maven dep
	"protobufjs",                 // JS
	"google-protobuf",            // JS
	"pip install protobuf",       // docs
}

// skipSuffixes lists binary file extensions excluded from the marker scan.
var skipSuffixes = map[string]struct{}{
	".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {},
	".pdf": {}, ".zip": {}, ".jar": {}, ".war": {},
	".class": {}, ".bin": {}, ".exe": {},
}

// maxScanSize caps how much of a single file the marker scan reads.
const maxScanSize = 4 << 20

// GetDetectResults inspects each configured directory for protobuf usage
// without printing anything.
func GetDetectResults(ctx context.Context, cfg *contract.Config) ([]schema.DetectResult, time.Duration, error) {
	start := time.Now()

	results := make([]schema.DetectResult, 0, len(cfg.RepoPaths))
	for _, dir := range cfg.RepoPaths {
		if err := ctx.Err(); err != nil {
			return nil, time.Since(start), err
		}
		results = append(results, detectDir(dir, cfg.ProtoExt))
	}
	return results, time.Since(start), nil
}

// detectDir walks one directory tree and reports whether it uses protobuf.
// Schema files win over dependency markers, so the reason names the stronger
// evidence when both exist.
func detectDir(dir, ext string) schema.DetectResult {
	result := schema.DetectResult{Dir: dir}

	protoCount := 0
	var markerReason string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entries don't change the verdict
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasSuffix(path, ext) {
			protoCount++
			return nil
		}
		if protoCount > 0 || markerReason != "" {
			return nil // evidence found, keep counting schemas only
		}

		suffix := strings.ToLower(filepath.Ext(path))
		if _, skip := skipSuffixes[suffix]; skip {
			return nil
		}
		if marker := scanForMarker(path); marker != "" {
			rel, relErr := filepath.Rel(dir, path)
			if relErr != nil {
				rel = path
			}
			markerReason = fmt.Sprintf("pattern:%s in %s", marker, rel)
		}
		return nil
	})
	if err != nil {
		result.Reason = fmt.Sprintf("walk_failed: %v", err)
		return result
	}

	switch {
	case protoCount > 0:
		result.UsesProtobuf = true
		result.Reason = fmt.Sprintf("found_proto_files: %d", protoCount)
	case markerReason != "":
		result.UsesProtobuf = true
		result.Reason = markerReason
	}
	return result
}

// scanForMarker returns the first dependency marker found in the file, or
// an empty string. Unreadable files are treated as marker-free.
func scanForMarker(path string) string {
	info, err := os.Stat(path)
	if err != nil || info.Size() > maxScanSize {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	text := string(data)
	for _, marker := range protoDependencyMarkers {
		if strings.Contains(text, marker) {
			return marker
		}
	}
	return ""
}
