package pipeline

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/WanXcodinG/socialgrab/internal/format"
)

// BatchItem records one URL's fate within a batch.
type BatchItem struct {
	URL      string
	FilePath string
	FileSize int64
	Err      string
}

// BatchResult accumulates per-URL outcomes. len(Successful)+len(Failed)
// always equals the number of input URLs.
type BatchResult struct {
	Total      int
	Successful []BatchItem
	Failed     []BatchItem
	TotalSize  int64
}

// Batch downloads each URL sequentially, to completion, before starting the
// next. Failures are accumulated, never fatal to the loop. Sequential
// execution also keeps the resolver's recency heuristic safe from
// same-directory races.
func (p *Pipeline) Batch(ctx context.Context, urls []string, quality format.Quality) BatchResult {
	result := BatchResult{Total: len(urls)}
	log.Info().Str("op", "pipeline/batch").Msgf("Starting batch download of %d URLs", len(urls))

	for i, url := range urls {
		log.Info().Str("op", "pipeline/batch").Msgf("Processing URL %d/%d", i+1, len(urls))
		outcome := p.Download(ctx, Request{URL: url, Quality: quality})
		if outcome.Success {
			result.Successful = append(result.Successful, BatchItem{
				URL:      url,
				FilePath: outcome.FilePath,
				FileSize: outcome.FileSize,
			})
			result.TotalSize += outcome.FileSize
		} else {
			result.Failed = append(result.Failed, BatchItem{URL: url, Err: outcome.Err})
		}
	}

	log.Info().Str("op", "pipeline/batch").Msgf("Batch finished: %d/%d successful", len(result.Successful), result.Total)
	return result
}

// ReadURLList parses a batch input file: one URL per line, blank lines
// ignored.
func ReadURLList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error reading URL list: %v", err)
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			urls = append(urls, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading URL list: %v", err)
	}
	return urls, nil
}
