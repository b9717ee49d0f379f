// Package tooltip decodes the item payload Hypixel embeds in every auction.
//
// The payload is standard base64 wrapping a gzip stream wrapping an NBT
// compound. Each layer is exposed on its own so malformed input can be
// exercised in isolation; Decode chains them.
package tooltip

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"github.com/Tnze/go-mc/nbt"
	"github.com/klauspost/compress/gzip"
)

var (
	// ErrMissingInfo is returned when the "i" list is empty.
	ErrMissingInfo = errors.New("tooltip has no item info")
	// ErrInvalidCount is returned when the stack size is absent or below one.
	ErrInvalidCount = errors.New("tooltip item count must be at least 1")
	// ErrMissingItemID is returned when tag.ExtraAttributes.id is absent.
	ErrMissingItemID = errors.New("tooltip has no item id")
)

// Item is the part of the tooltip the decoder cares about.
type Item struct {
	ID    string
	Count int
}

type payload struct {
	Info []info `nbt:"i"`
}

type info struct {
	Count int8    `nbt:"Count"`
	Tag   infoTag `nbt:"tag"`
}

type infoTag struct {
	ExtraAttributes extraAttributes `nbt:"ExtraAttributes"`
}

type extraAttributes struct {
	ID string `nbt:"id"`
}

// Decode runs all three stages on a raw item_bytes string.
func Decode(data string) (Item, error) {
	compressed, err := DecodeBase64(data)
	if err != nil {
		return Item{}, err
	}
	raw, err := Gunzip(compressed)
	if err != nil {
		return Item{}, err
	}
	return ParseNBT(raw)
}

// DecodeBase64 decodes the outer standard base64 layer.
func DecodeBase64(data string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("base64: %w", err)
	}
	return b, nil
}

// Gunzip inflates the gzip layer.
func Gunzip(compressed []byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("gzip: %w", err)
	}
	defer zr.Close()

	raw, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("gzip: %w", err)
	}
	return raw, nil
}

// ParseNBT reads i[0].Count and i[0].tag.ExtraAttributes.id from an
// uncompressed NBT compound.
func ParseNBT(raw []byte) (Item, error) {
	var p payload
	if err := nbt.Unmarshal(raw, &p); err != nil {
		return Item{}, fmt.Errorf("nbt: %w", err)
	}
	if len(p.Info) == 0 {
		return Item{}, ErrMissingInfo
	}

	first := p.Info[0]
	if first.Count < 1 {
		return Item{}, ErrInvalidCount
	}
	if first.Tag.ExtraAttributes.ID == "" {
		return Item{}, ErrMissingItemID
	}
	return Item{
		ID:    first.Tag.ExtraAttributes.ID,
		Count: int(first.Count),
	}, nil
}

// Encode builds a payload in the layout Hypixel serves, one item per entry.
func Encode(items ...Item) (string, error) {
	p := payload{Info: make([]info, 0, len(items))}
	for _, it := range items {
		if it.Count < 0 || it.Count > 127 {
			return "", fmt.Errorf("item count %d does not fit a byte tag", it.Count)
		}
		p.Info = append(p.Info, info{
			Count: int8(it.Count),
			Tag:   infoTag{ExtraAttributes: extraAttributes{ID: it.ID}},
		})
	}

	raw, err := nbt.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("nbt: %w", err)
	}

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(raw); err != nil {
		return "", fmt.Errorf("gzip: %w", err)
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("gzip: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
