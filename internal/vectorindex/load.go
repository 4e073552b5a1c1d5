package vectorindex

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"io"
	"os"
	"strconv"

	"tapdlens/internal/issuedata"
)

// Load reads the three sidecars at base and validates the row <-> metadata
// positional invariant. Missing sidecars and dimension mismatches are
// reported as distinct, typed failures so callers can tell "never built"
// apart from "needs rebuild" apart from "on-disk state is inconsistent".
func Load(base string, currentModelDim int) (*Index, error) {
	vecPath, metaPath, cfgPath := sidecarPaths(base)

	if _, err := os.Stat(vecPath); os.IsNotExist(err) {
		return nil, &Error{Kind: KindNotBuilt, Message: "no index at " + base}
	}

	descriptor, err := readDescriptor(cfgPath)
	if err != nil {
		return nil, &Error{Kind: KindCorruptIndex, Message: "unreadable descriptor", Cause: err}
	}

	vectors, err := readVectors(vecPath)
	if err != nil {
		return nil, &Error{Kind: KindCorruptIndex, Message: "unreadable vector sidecar", Cause: err}
	}

	metadata, err := readMetadata(metaPath)
	if err != nil {
		return nil, &Error{Kind: KindCorruptIndex, Message: "unreadable metadata sidecar", Cause: err}
	}

	if len(vectors) != len(metadata) || descriptor.ChunkCount != len(metadata) {
		return nil, &Error{Kind: KindCorruptIndex, Message: "index row count does not match metadata count"}
	}
	for i, m := range metadata {
		if len(m.ItemIDs) != m.ItemCount {
			return nil, &Error{Kind: KindCorruptIndex, Message: "metadata item_ids/item_count mismatch at row " + strconv.Itoa(i)}
		}
	}

	if currentModelDim > 0 && descriptor.VectorDimension != 0 && descriptor.VectorDimension != currentModelDim {
		return nil, &Error{Kind: KindIncompatibleIndex, Message: "index dimension does not match current model"}
	}

	return &Index{Descriptor: descriptor, Vectors: vectors, Metadata: metadata}, nil
}

func readDescriptor(path string) (Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Descriptor{}, err
	}
	var d Descriptor
	if err := json.Unmarshal(data, &d); err != nil {
		return Descriptor{}, err
	}
	return d, nil
}

func readVectors(path string) ([][]float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var count, dim uint32
	if err := binary.Read(f, binary.LittleEndian, &count); err != nil {
		return nil, err
	}
	if err := binary.Read(f, binary.LittleEndian, &dim); err != nil {
		return nil, err
	}

	vectors := make([][]float32, count)
	for i := range vectors {
		row := make([]float32, dim)
		if err := binary.Read(f, binary.LittleEndian, &row); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return nil, io.ErrUnexpectedEOF
			}
			return nil, err
		}
		vectors[i] = row
	}
	return vectors, nil
}

func readMetadata(path string) ([]issuedata.ChunkMeta, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var metadata []issuedata.ChunkMeta
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var m issuedata.ChunkMeta
		if err := json.Unmarshal(line, &m); err != nil {
			return nil, err
		}
		metadata = append(metadata, m)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return metadata, nil
}
