package vectorindex

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"

	"tapdlens/internal/issuedata"
	"tapdlens/internal/textextract"
)

const defaultChunkSize = 10

// chunkKind splits records of one kind into consecutive chunks of up to K
// records each and fills in each chunk's joined canonical text.
func chunkKind(kind issuedata.Kind, records []issuedata.Record, k int) []issuedata.ChunkMeta {
	if k <= 0 {
		k = defaultChunkSize
	}

	var chunks []issuedata.ChunkMeta
	for start := 0; start < len(records); start += k {
		idx := start / k
		end := start + k
		if end > len(records) {
			end = len(records)
		}
		group := records[start:end]

		texts := make([]string, len(group))
		ids := make([]string, len(group))
		for i, rec := range group {
			texts[i] = textextract.Extract(rec)
			ids[i] = rec.ID
		}
		text := strings.Join(texts, " | ")

		chunks = append(chunks, issuedata.ChunkMeta{
			ChunkID:    chunkID(kind, idx, text),
			Kind:       kind,
			ChunkIndex: idx,
			ItemIDs:    ids,
			ItemCount:  len(group),
			Records:    append([]issuedata.Record{}, group...),
			Text:       text,
		})
	}
	return chunks
}

func chunkID(kind issuedata.Kind, idx int, text string) string {
	sum := sha1.Sum([]byte(text))
	return fmt.Sprintf("%s-%d-%s", kind, idx, hex.EncodeToString(sum[:])[:12])
}
