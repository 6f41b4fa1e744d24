// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// resource.go — engine resources and scene graphs: the Resource and Node
// types, packing a node tree into a flat PackedScene, and instantiating it
// back.

// Package resource is the object and scene serialization service. It saves
// resources and packed scenes to text (.tres, .tscn) or binary (.res, .scn)
// payloads in memory and loads them back.
package resource

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownExtension = errors.New("resource: unknown extension")
	ErrKindMismatch     = errors.New("resource: value does not match extension")
	ErrUnsupportedValue = errors.New("resource: value is not a resource or scene")
	ErrMalformed        = errors.New("resource: malformed payload")
	ErrEmptyScene       = errors.New("resource: scene has no root node")
	ErrCycle            = errors.New("resource: node graph contains a cycle")
)

// Resource is an opaque serializable engine object.
type Resource struct {
	Type       string
	Properties map[string]any
}

// Node is one node of a scene graph.
type Node struct {
	Name       string
	Type       string
	Properties map[string]any
	Children   []*Node
}

// AddChild appends c to n's children and returns c.
func (n *Node) AddChild(c *Node) *Node {
	n.Children = append(n.Children, c)
	return c
}

// NodeRecord is a flattened node; Parent indexes into PackedScene.Nodes and
// is -1 for the root.
type NodeRecord struct {
	Name       string
	Type       string
	Parent     int
	Properties map[string]any
}

// PackedScene is a node tree flattened in depth-first order.
type PackedScene struct {
	Nodes []NodeRecord
}

// Pack flattens the tree rooted at root.
func Pack(root *Node) (*PackedScene, error) {
	if root == nil {
		return nil, ErrEmptyScene
	}
	ps := &PackedScene{}
	seen := make(map[*Node]bool)
	var walk func(n *Node, parent int) error
	walk = func(n *Node, parent int) error {
		if n == nil {
			return nil
		}
		if seen[n] {
			return fmt.Errorf("%w at node %q", ErrCycle, n.Name)
		}
		seen[n] = true
		idx := len(ps.Nodes)
		ps.Nodes = append(ps.Nodes, NodeRecord{
			Name:       n.Name,
			Type:       n.Type,
			Parent:     parent,
			Properties: n.Properties,
		})
		for _, c := range n.Children {
			if err := walk(c, idx); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(root, -1); err != nil {
		return nil, err
	}
	return ps, nil
}

// Instantiate rebuilds the node tree and returns its root.
func (p *PackedScene) Instantiate() (*Node, error) {
	if p == nil || len(p.Nodes) == 0 {
		return nil, ErrEmptyScene
	}
	nodes := make([]*Node, len(p.Nodes))
	for i, rec := range p.Nodes {
		switch {
		case i == 0 && rec.Parent != -1:
			return nil, fmt.Errorf("%w: root has parent %d", ErrMalformed, rec.Parent)
		case i > 0 && (rec.Parent < 0 || rec.Parent >= i):
			return nil, fmt.Errorf("%w: node %d has parent %d", ErrMalformed, i, rec.Parent)
		}
		nodes[i] = &Node{Name: rec.Name, Type: rec.Type, Properties: copyProps(rec.Properties)}
		if i > 0 {
			nodes[rec.Parent].AddChild(nodes[i])
		}
	}
	return nodes[0], nil
}

func copyProps(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
