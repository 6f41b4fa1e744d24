package resource_test

import (
	"strings"
	"testing"

	"github.com/AndrewDonelson/zipstore/internal/resource"
	"github.com/AndrewDonelson/zipstore/internal/variant"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTree() *resource.Node {
	root := &resource.Node{Name: "Level", Type: "Node2D", Properties: map[string]any{"seed": int64(42)}}
	player := root.AddChild(&resource.Node{Name: "Player", Type: "CharacterBody2D", Properties: map[string]any{
		"position":     variant.Vector2{X: 10, Y: 20},
		"editor_lock":  true,
		"display_name": "hero",
	}})
	player.AddChild(&resource.Node{Name: "Sprite", Type: "Sprite2D", Properties: map[string]any{"modulate": variant.Color{R: 1, G: 1, B: 1, A: 0.5}}})
	root.AddChild(&resource.Node{Name: "Camera", Type: "Camera2D", Properties: map[string]any{"zoom": 1.5}})
	return root
}

func TestPack_DepthFirstWithParents(t *testing.T) {
	ps, err := resource.Pack(sampleTree())
	require.NoError(t, err)
	require.Len(t, ps.Nodes, 4)

	names := make([]string, len(ps.Nodes))
	parents := make([]int, len(ps.Nodes))
	for i, n := range ps.Nodes {
		names[i], parents[i] = n.Name, n.Parent
	}
	assert.Equal(t, []string{"Level", "Player", "Sprite", "Camera"}, names)
	assert.Equal(t, []int{-1, 0, 1, 0}, parents)
}

func TestPack_Errors(t *testing.T) {
	_, err := resource.Pack(nil)
	assert.ErrorIs(t, err, resource.ErrEmptyScene)

	a := &resource.Node{Name: "a"}
	b := a.AddChild(&resource.Node{Name: "b"})
	b.AddChild(a)
	_, err = resource.Pack(a)
	assert.ErrorIs(t, err, resource.ErrCycle)
}

func TestInstantiate_RebuildsTree(t *testing.T) {
	ps, err := resource.Pack(sampleTree())
	require.NoError(t, err)
	root, err := ps.Instantiate()
	require.NoError(t, err)
	if diff := cmp.Diff(sampleTree(), root); diff != "" {
		t.Fatalf("instantiate mismatch (-want +got):\n%s", diff)
	}
}

func TestInstantiate_BadParent(t *testing.T) {
	ps := &resource.PackedScene{Nodes: []resource.NodeRecord{{Name: "r", Parent: -1}, {Name: "c", Parent: 5}}}
	_, err := ps.Instantiate()
	assert.ErrorIs(t, err, resource.ErrMalformed)

	_, err = (&resource.PackedScene{}).Instantiate()
	assert.ErrorIs(t, err, resource.ErrEmptyScene)
}

func TestSaveLoad_Resource(t *testing.T) {
	res := &resource.Resource{Type: "Inventory", Properties: map[string]any{
		"gold":  int64(250),
		"items": []any{"sword", "shield"},
		"spawn": variant.Vector3{X: 1, Y: 0, Z: -1},
	}}
	for _, tc := range []struct {
		ext   string
		flags resource.SaveFlags
	}{
		{".tres", 0},
		{".res", 0},
		{".res", resource.FlagCompress},
		{".TRES", resource.FlagCompress},
	} {
		data, err := resource.Save(res, tc.ext, tc.flags)
		require.NoError(t, err, tc.ext)
		got, err := resource.Load(data, tc.ext)
		require.NoError(t, err, tc.ext)
		if diff := cmp.Diff(res, got); diff != "" {
			t.Fatalf("%s flags=%d (-want +got):\n%s", tc.ext, tc.flags, diff)
		}
	}
}

func TestSave_TextHeader(t *testing.T) {
	data, err := resource.Save(&resource.Resource{Type: "Theme"}, ".tres", 0)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "[zipstore_resource kind=resource format=1]\n"), string(data))
}

func TestSave_BinaryMagic(t *testing.T) {
	data, err := resource.Save(&resource.Resource{Type: "Theme"}, ".res", 0)
	require.NoError(t, err)
	assert.Equal(t, "RSRC", string(data[:4]))
}

func TestSaveLoad_Scene(t *testing.T) {
	ps, err := resource.Pack(sampleTree())
	require.NoError(t, err)
	for _, ext := range []string{".tscn", ".scn"} {
		data, err := resource.Save(ps, ext, resource.FlagCompress)
		require.NoError(t, err, ext)
		got, err := resource.Load(data, ext)
		require.NoError(t, err, ext)
		if diff := cmp.Diff(ps, got); diff != "" {
			t.Fatalf("%s (-want +got):\n%s", ext, diff)
		}
	}
}

func TestSave_OmitEditorProperties(t *testing.T) {
	ps, err := resource.Pack(sampleTree())
	require.NoError(t, err)
	data, err := resource.Save(ps, ".scn", resource.FlagOmitEditorProperties)
	require.NoError(t, err)
	got, err := resource.Load(data, ".scn")
	require.NoError(t, err)
	player := got.(*resource.PackedScene).Nodes[1]
	assert.NotContains(t, player.Properties, "editor_lock")
	assert.Equal(t, "hero", player.Properties["display_name"])
}

func TestSave_Errors(t *testing.T) {
	_, err := resource.Save(&resource.Resource{}, ".tscn", 0)
	assert.ErrorIs(t, err, resource.ErrKindMismatch)
	_, err = resource.Save(&resource.PackedScene{Nodes: []resource.NodeRecord{{Parent: -1}}}, ".res", 0)
	assert.ErrorIs(t, err, resource.ErrKindMismatch)
	_, err = resource.Save(&resource.Resource{}, ".zip", 0)
	assert.ErrorIs(t, err, resource.ErrUnknownExtension)
	_, err = resource.Save("nope", ".tres", 0)
	assert.ErrorIs(t, err, resource.ErrUnsupportedValue)
	_, err = resource.Save(&resource.PackedScene{}, ".tscn", 0)
	assert.ErrorIs(t, err, resource.ErrEmptyScene)
}

func TestLoad_Errors(t *testing.T) {
	_, err := resource.Load([]byte("plain text"), ".tres")
	assert.ErrorIs(t, err, resource.ErrMalformed)
	_, err = resource.Load([]byte("XXXX\x01\x00\x00"), ".res")
	assert.ErrorIs(t, err, resource.ErrMalformed)
	_, err = resource.Load([]byte("[zipstore_resource kind=resource format=9]\n"), ".tres")
	assert.ErrorIs(t, err, resource.ErrMalformed)

	data, err := resource.Save(&resource.Resource{Type: "T"}, ".res", 0)
	require.NoError(t, err)
	_, err = resource.Load(data, ".scn")
	assert.ErrorIs(t, err, resource.ErrKindMismatch)
	_, err = resource.Load(data, ".bin")
	assert.ErrorIs(t, err, resource.ErrUnknownExtension)
}

func TestIsResourceExt(t *testing.T) {
	assert.True(t, resource.IsResourceExt(".TSCN"))
	assert.False(t, resource.IsResourceExt(".json"))
}
