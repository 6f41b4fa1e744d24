package resource

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/AndrewDonelson/zipstore/internal/codec"
	"github.com/klauspost/compress/zstd"
)

// SaveFlags tune Save.
type SaveFlags uint32

const (
	// FlagCompress zstd-compresses binary payloads. Ignored by text formats.
	FlagCompress SaveFlags = 1 << iota
	// FlagOmitEditorProperties drops properties whose key starts with
	// "editor_".
	FlagOmitEditorProperties
)

const (
	formatVersion = 1
	binaryMagic   = "RSRC"
	textPrefix    = "[zipstore_resource "
	editorPrefix  = "editor_"

	kindResource = "resource"
	kindScene    = "scene"

	binCompressed byte = 1
)

type format struct {
	kind   string
	binary bool
}

var formats = map[string]format{
	".tres": {kindResource, false},
	".res":  {kindResource, true},
	".tscn": {kindScene, false},
	".scn":  {kindScene, true},
}

// IsResourceExt reports whether ext is one of the resource or scene formats.
func IsResourceExt(ext string) bool {
	_, ok := formats[strings.ToLower(ext)]
	return ok
}

// Save serializes obj (*Resource or *PackedScene) for ext.
func Save(obj any, ext string, flags SaveFlags) ([]byte, error) {
	f, ok := formats[strings.ToLower(ext)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownExtension, ext)
	}
	var body map[string]any
	switch o := obj.(type) {
	case *Resource:
		if o == nil {
			return nil, fmt.Errorf("%w: nil resource", ErrUnsupportedValue)
		}
		if f.kind != kindResource {
			return nil, fmt.Errorf("%w: resource saved as %s", ErrKindMismatch, ext)
		}
		body = map[string]any{"type": o.Type, "properties": filterProps(o.Properties, flags)}
	case *PackedScene:
		if f.kind != kindScene {
			return nil, fmt.Errorf("%w: scene saved as %s", ErrKindMismatch, ext)
		}
		if o == nil || len(o.Nodes) == 0 {
			return nil, ErrEmptyScene
		}
		nodes := make([]any, len(o.Nodes))
		for i, rec := range o.Nodes {
			nodes[i] = map[string]any{
				"name":       rec.Name,
				"type":       rec.Type,
				"parent":     rec.Parent,
				"properties": filterProps(rec.Properties, flags),
			}
		}
		body = map[string]any{"nodes": nodes}
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedValue, obj)
	}
	if f.binary {
		return saveBinary(f.kind, body, flags)
	}
	return saveText(f.kind, body)
}

// Load parses data saved for ext, returning *Resource or *PackedScene.
func Load(data []byte, ext string) (any, error) {
	f, ok := formats[strings.ToLower(ext)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownExtension, ext)
	}
	var kind string
	var body map[string]any
	var err error
	if f.binary {
		kind, body, err = loadBinary(data)
	} else {
		kind, body, err = loadText(data)
	}
	if err != nil {
		return nil, err
	}
	if kind != f.kind {
		return nil, fmt.Errorf("%w: %s payload in %s", ErrKindMismatch, kind, ext)
	}
	if kind == kindResource {
		return decodeResource(body)
	}
	return decodeScene(body)
}

func saveText(kind string, body map[string]any) ([]byte, error) {
	text, err := codec.Literal{}.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", kind, err)
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%skind=%s format=%d]\n", textPrefix, kind, formatVersion)
	buf.Write(text)
	return buf.Bytes(), nil
}

func loadText(data []byte) (string, map[string]any, error) {
	header, rest, _ := bytes.Cut(data, []byte("\n"))
	line := strings.TrimSpace(string(header))
	if !strings.HasPrefix(line, textPrefix) || !strings.HasSuffix(line, "]") {
		return "", nil, fmt.Errorf("%w: missing header", ErrMalformed)
	}
	attrs := make(map[string]string)
	for _, field := range strings.Fields(strings.TrimSuffix(strings.TrimPrefix(line, textPrefix), "]")) {
		k, v, ok := strings.Cut(field, "=")
		if !ok {
			return "", nil, fmt.Errorf("%w: bad header field %q", ErrMalformed, field)
		}
		attrs[k] = v
	}
	if v, err := strconv.Atoi(attrs["format"]); err != nil || v != formatVersion {
		return "", nil, fmt.Errorf("%w: unsupported format %q", ErrMalformed, attrs["format"])
	}
	body, err := decodeBody(codec.Literal{}, rest)
	if err != nil {
		return "", nil, err
	}
	return attrs["kind"], body, nil
}

func saveBinary(kind string, body map[string]any, flags SaveFlags) ([]byte, error) {
	payload, err := codec.MsgPack{}.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", kind, err)
	}
	var hdrFlags byte
	if flags&FlagCompress != 0 {
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, err
		}
		payload = enc.EncodeAll(payload, nil)
		_ = enc.Close()
		hdrFlags |= binCompressed
	}
	kindByte := byte(0)
	if kind == kindScene {
		kindByte = 1
	}
	out := make([]byte, 0, len(binaryMagic)+3+len(payload))
	out = append(out, binaryMagic...)
	out = append(out, formatVersion, kindByte, hdrFlags)
	return append(out, payload...), nil
}

func loadBinary(data []byte) (string, map[string]any, error) {
	if len(data) < len(binaryMagic)+3 || string(data[:len(binaryMagic)]) != binaryMagic {
		return "", nil, fmt.Errorf("%w: bad magic", ErrMalformed)
	}
	hdr := data[len(binaryMagic) : len(binaryMagic)+3]
	if hdr[0] != formatVersion {
		return "", nil, fmt.Errorf("%w: unsupported format %d", ErrMalformed, hdr[0])
	}
	kind := kindResource
	if hdr[1] == 1 {
		kind = kindScene
	}
	payload := data[len(binaryMagic)+3:]
	if hdr[2]&binCompressed != 0 {
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return "", nil, err
		}
		defer dec.Close()
		payload, err = dec.DecodeAll(payload, nil)
		if err != nil {
			return "", nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	}
	body, err := decodeBody(codec.MsgPack{}, payload)
	return kind, body, err
}

func decodeBody(c codec.Codec, data []byte) (map[string]any, error) {
	v, err := codec.Decode(c, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	body, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: body is %T", ErrMalformed, v)
	}
	return body, nil
}

func decodeResource(body map[string]any) (*Resource, error) {
	typ, _ := body["type"].(string)
	props, err := propsOf(body["properties"])
	if err != nil {
		return nil, err
	}
	return &Resource{Type: typ, Properties: props}, nil
}

func decodeScene(body map[string]any) (*PackedScene, error) {
	raw, ok := body["nodes"].([]any)
	if !ok || len(raw) == 0 {
		return nil, ErrEmptyScene
	}
	ps := &PackedScene{Nodes: make([]NodeRecord, len(raw))}
	for i, r := range raw {
		m, ok := r.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: node %d is %T", ErrMalformed, i, r)
		}
		parent, ok := m["parent"].(int64)
		if !ok {
			return nil, fmt.Errorf("%w: node %d has no parent index", ErrMalformed, i)
		}
		props, err := propsOf(m["properties"])
		if err != nil {
			return nil, err
		}
		name, _ := m["name"].(string)
		typ, _ := m["type"].(string)
		ps.Nodes[i] = NodeRecord{Name: name, Type: typ, Parent: int(parent), Properties: props}
	}
	return ps, nil
}

func propsOf(v any) (map[string]any, error) {
	switch p := v.(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		return p, nil
	}
	return nil, fmt.Errorf("%w: properties is %T", ErrMalformed, v)
}

func filterProps(props map[string]any, flags SaveFlags) map[string]any {
	out := make(map[string]any, len(props))
	for k, v := range props {
		if flags&FlagOmitEditorProperties != 0 && strings.HasPrefix(k, editorPrefix) {
			continue
		}
		out[k] = v
	}
	return out
}
