package dir

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/icta-labs/lore-cli/internal/core/domain"
)

// metaRecord is one line of meta.jsonl. The ordinal is written out
// explicitly so a corrupted or hand-edited file is detectable: line i
// must carry ordinal i.
type metaRecord struct {
	Ordinal int `json:"ordinal"`
	domain.Chunk
}

// writeChunks writes one JSON record per line, in the exact order
// vectors were added to the index.
func writeChunks(path string, chunks []domain.Chunk) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating metadata file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	for i, chunk := range chunks {
		if err := enc.Encode(metaRecord{Ordinal: i, Chunk: chunk}); err != nil {
			return fmt.Errorf("writing metadata record %d: %w", i, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing metadata: %w", err)
	}
	return f.Sync()
}

// readChunks reads the metadata records back, verifying the ordinal
// sequence is dense and in order.
func readChunks(path string) ([]domain.Chunk, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening metadata file: %w", err)
	}
	defer f.Close()

	var chunks []domain.Chunk
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		var rec metaRecord
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			return nil, fmt.Errorf("parsing metadata record %d: %w", len(chunks), err)
		}
		if rec.Ordinal != len(chunks) {
			return nil, fmt.Errorf("metadata record %d carries ordinal %d", len(chunks), rec.Ordinal)
		}
		chunks = append(chunks, rec.Chunk)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading metadata: %w", err)
	}
	return chunks, nil
}
