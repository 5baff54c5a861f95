package problem

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ghamerly/problem-style-check/internal/issuelog"
	pdflib "github.com/ledongthuc/pdf"
)

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".pdf":  true,
	".svg":  true,
}

// CheckImages warns about statement images that are larger than maxKB (they
// slow down web rendering) and about PDF images the renderer will not be able
// to read. Findings are keyed by the image path relative to the collection so
// the report groups them under the problem.
func CheckImages(log *issuelog.Log, p Problem, maxKB int64) error {
	entries, err := os.ReadDir(p.StatementDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read statement dir: %w", err)
	}

	for _, e := range entries {
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if e.IsDir() || !imageExtensions[ext] {
			continue
		}
		path := filepath.Join(p.StatementDir(), e.Name())
		key := filepath.Join(p.Shortname, "problem_statement", e.Name())

		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("stat image: %w", err)
		}
		if info.Size() > maxKB*1024 {
			log.Warn(key, fmt.Sprintf("image is large (%d kB) -- try to keep images under %dkB",
				info.Size()/1024, maxKB))
		}

		if ext == ".pdf" {
			if err := probePDF(path); err != nil {
				log.Warn(key, fmt.Sprintf("unreadable pdf image: %v", err))
			}
		}
	}
	return nil
}

// probePDF opens the PDF far enough to know the renderer can consume it.
func probePDF(path string) error {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if reader.NumPage() < 1 {
		return fmt.Errorf("no pages")
	}
	return nil
}
