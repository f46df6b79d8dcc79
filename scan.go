package scif

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/scif-go/scif/stream"
)

const scanWorkers = 10

// Scan walks the directory tree at path, probes every regular file against
// the registry and catalogs the datasets that match a format. Hidden files
// and directories are skipped. Requires a catalog.
func (s *SCIF) Scan(ctx context.Context, path string) error {
	if s.catalog == nil {
		return errors.New("scif: no catalog configured")
	}

	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var errcList []<-chan error

	files, errc := s.findFiles(ctx, dir)
	errcList = append(errcList, errc)

	for i := 0; i < scanWorkers; i++ {
		errcList = append(errcList, s.fileWorker(ctx, files))
	}

	return waitForPipeline(errcList...)
}

func (s *SCIF) findFiles(ctx context.Context, base string) (<-chan string, <-chan error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
			if info.Name()[0] == '.' {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if !info.Mode().IsRegular() {
				return nil
			}

			select {
			case out <- file:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc
}

func (s *SCIF) fileWorker(ctx context.Context, in <-chan string) <-chan error {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for file := range in {
			if err := s.scanFile(file); err != nil {
				errc <- err
				return
			}

			select {
			case <-ctx.Done():
				return
			default:
			}
		}
	}()
	return errc
}

// scanFile probes one file and catalogs it if a registered format claims
// it. Files no format recognizes are skipped silently; they are the common
// case on a mixed filesystem.
func (s *SCIF) scanFile(file string) error {
	src, err := stream.Open(file)
	if err != nil {
		return err
	}
	defer src.Close()

	format, err := s.registry.Find(file, src)
	if err != nil {
		if errors.Is(err, ErrFormatMismatch) {
			return nil
		}
		return err
	}

	meta := format.NewMetadata()
	if err := src.Seek(0); err != nil {
		return err
	}
	if err := format.NewParser().Parse(src, meta, ParseOptions{Level: MetadataLevelMinimum}); err != nil {
		s.logger.Printf("%s: matched %q but failed to parse: %v", file, format.Name(), err)
		return nil
	}
	if err := meta.Populate(); err != nil {
		return err
	}
	im := meta.Images()[0]

	sum, err := hashFile(file)
	if err != nil {
		return err
	}

	s.logger.Printf("%s: cataloguing as %q", file, format.Name())

	return s.catalog.Put(DatasetInfo{
		Path:      file,
		Format:    format.Name(),
		SHA1:      sum,
		Width:     im.PlaneWidth(),
		Height:    im.PlaneHeight(),
		Planes:    im.PlaneCount(),
		PixelType: im.PixelType,
	})
}

func hashFile(file string) (string, error) {
	f, err := os.Open(file)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha1.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}
