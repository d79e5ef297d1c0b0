// Package markup loads layouts described in YAML and builds them into view
// trees backed by the stack containers.
//
// A document names its data and a root node:
//
//	name: profile
//	data:
//	  title: Profile
//	  tags: [go, ui]
//	root:
//	  vstack:
//	    spacing: 8
//	    children:
//	      - label: "{{title}}"
//	      - hlist:
//	          bind: tags
//	          template: {label: "#{{item}}"}
//
// Every data key becomes a [core.Live] in the layout's [Scope]. Lists and
// bound padding follow their key through [Scope.Set]; conditionals, loops and
// text templates read the data once, when the layout is built.
package markup

import (
	"fmt"
	"image/color"
	"os"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/stackui/pkg/errors"
	"github.com/go-drift/stackui/pkg/view"
)

// Document is a parsed markup file.
type Document struct {
	Name string         `yaml:"name"`
	Data map[string]any `yaml:"data"`
	Root Node           `yaml:"root"`
}

// Parse decodes a document from YAML. Every failure is a *errors.StackError
// of kind parsing.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.New("markup.Parse", errors.KindParsing, "", err)
	}
	if doc.Root.Kind == NodeInvalid {
		return nil, errors.New("markup.Parse", errors.KindParsing, "root", fmt.Errorf("document has no root node"))
	}
	if doc.Data == nil {
		doc.Data = map[string]any{}
	}
	return &doc, nil
}

// Load reads and parses the document at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("markup.Load", errors.KindParsing, path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if doc.Name == "" {
		doc.Name = strings.TrimSuffix(baseName(path), ".yaml")
	}
	return doc, nil
}

func baseName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}

// NodeKind identifies what a node builds.
type NodeKind int

const (
	NodeInvalid NodeKind = iota
	NodeLabel
	NodeSpacer
	NodeDivider
	NodeColor
	NodeVStack
	NodeHStack
	NodeVScroll
	NodeHScroll
	NodeVList
	NodeHList
	NodeBox
	NodeIf
	NodeForEach
)

var nodeKindNames = map[string]NodeKind{
	"label":   NodeLabel,
	"spacer":  NodeSpacer,
	"divider": NodeDivider,
	"color":   NodeColor,
	"vstack":  NodeVStack,
	"hstack":  NodeHStack,
	"vscroll": NodeVScroll,
	"hscroll": NodeHScroll,
	"vlist":   NodeVList,
	"hlist":   NodeHList,
	"box":     NodeBox,
	"if":      NodeIf,
	"foreach": NodeForEach,
}

// String returns the key that selects the kind in markup.
func (k NodeKind) String() string {
	for name, kind := range nodeKindNames {
		if kind == k {
			return name
		}
	}
	return fmt.Sprintf("NodeKind(%d)", int(k))
}

// companion keys that may appear next to a kind key.
var companionKeys = map[NodeKind][]string{
	NodeIf:      {"then", "else"},
	NodeForEach: {"template"},
}

// Node is one element of the layout tree. Exactly one of the kind-specific
// fields is set, according to Kind.
type Node struct {
	Kind NodeKind
	Line int

	Text    string
	Spacer  SpacerSpec
	Divider DividerSpec
	Fill    color.NRGBA
	Stack   *StackSpec
	List    *ListSpec
	Box     *BoxSpec
	If      *IfSpec
	ForEach *ForEachSpec
}

// Arrangement holds optional stack parameters. Unset fields fall back to the
// defaults passed to Build.
type Arrangement struct {
	Distribution *view.Distribution `yaml:"distribution"`
	Alignment    *view.Alignment    `yaml:"alignment"`
	Spacing      *float64           `yaml:"spacing"`
}

// StackSpec describes vstack, hstack, vscroll and hscroll nodes.
type StackSpec struct {
	Arrangement `yaml:",inline"`
	Children    []Node `yaml:"children"`
}

// ListSpec describes vlist and hlist nodes. Template is built once per item
// of the bound value every time it changes.
type ListSpec struct {
	Arrangement `yaml:",inline"`
	Bind        string `yaml:"bind"`
	Template    *Node  `yaml:"template"`
}

// BoxSpec describes a padding box.
type BoxSpec struct {
	Padding Padding `yaml:"padding"`
	Child   *Node   `yaml:"child"`
}

// SpacerSpec describes a spacer.
type SpacerSpec struct {
	Length float64 `yaml:"length"`
}

// DividerSpec describes a divider. Zero values keep the divider defaults.
type DividerSpec struct {
	Thickness float64 `yaml:"thickness"`
	Color     string  `yaml:"color"`
}

// IfSpec selects Then or Else from the truthiness of a data key. A leading
// "!" negates the key.
type IfSpec struct {
	Cond string
	Then []Node
	Else []Node
}

// ForEachSpec repeats Template for every item of a data key.
type ForEachSpec struct {
	Key      string
	Template Node
}

// Padding is either literal insets or a binding to a data key holding
// insets. A bare number applies to every edge.
type Padding struct {
	Insets view.EdgeInsets
	Bind   string
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *Padding) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var all float64
		if err := value.Decode(&all); err != nil {
			return fmt.Errorf("line %d: malformed insets %q", value.Line, value.Value)
		}
		p.Insets = view.EdgeInsetsAll(all)
		return nil
	case yaml.MappingNode:
		keys := mappingKeys(value)
		if slices.Contains(keys, "bind") {
			if len(keys) != 1 {
				return fmt.Errorf("line %d: bound padding takes no other keys", value.Line)
			}
			return value.Content[1].Decode(&p.Bind)
		}
		if err := checkKeys(value, "top", "left", "bottom", "right"); err != nil {
			return fmt.Errorf("malformed insets: %w", err)
		}
		return value.Decode(&p.Insets)
	default:
		return fmt.Errorf("line %d: malformed insets", value.Line)
	}
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (n *Node) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: node must be a mapping", value.Line)
	}
	n.Line = value.Line

	fields := make(map[string]*yaml.Node, len(value.Content)/2)
	var kinds []string
	for i := 0; i+1 < len(value.Content); i += 2 {
		key := value.Content[i].Value
		fields[key] = value.Content[i+1]
		if _, ok := nodeKindNames[key]; ok {
			kinds = append(kinds, key)
		}
	}
	switch len(kinds) {
	case 0:
		keys := mappingKeys(value)
		if len(keys) == 0 {
			return fmt.Errorf("line %d: empty node", value.Line)
		}
		return fmt.Errorf("line %d: unknown node kind %q", value.Line, keys[0])
	case 1:
	default:
		return fmt.Errorf("line %d: node has more than one kind: %s", value.Line, strings.Join(kinds, ", "))
	}

	n.Kind = nodeKindNames[kinds[0]]
	for key := range fields {
		if key != kinds[0] && !slices.Contains(companionKeys[n.Kind], key) {
			return fmt.Errorf("line %d: unexpected key %q in %s node", value.Line, key, n.Kind)
		}
	}
	body := fields[kinds[0]]

	switch n.Kind {
	case NodeLabel:
		return body.Decode(&n.Text)
	case NodeSpacer:
		if err := checkKeys(body, "length"); err != nil {
			return err
		}
		return decodeOptional(body, &n.Spacer)
	case NodeDivider:
		if err := checkKeys(body, "thickness", "color"); err != nil {
			return err
		}
		if err := decodeOptional(body, &n.Divider); err != nil {
			return err
		}
		if n.Divider.Color != "" {
			if _, err := ParseColor(n.Divider.Color); err != nil {
				return fmt.Errorf("line %d: %w", body.Line, err)
			}
		}
		return nil
	case NodeColor:
		var s string
		if err := body.Decode(&s); err != nil {
			return err
		}
		c, err := ParseColor(s)
		if err != nil {
			return fmt.Errorf("line %d: %w", body.Line, err)
		}
		n.Fill = c
		return nil
	case NodeVStack, NodeHStack, NodeVScroll, NodeHScroll:
		if err := checkKeys(body, "distribution", "alignment", "spacing", "children"); err != nil {
			return err
		}
		n.Stack = &StackSpec{}
		return decodeOptional(body, n.Stack)
	case NodeVList, NodeHList:
		if err := checkKeys(body, "distribution", "alignment", "spacing", "bind", "template"); err != nil {
			return err
		}
		n.List = &ListSpec{}
		if err := body.Decode(n.List); err != nil {
			return err
		}
		if n.List.Bind == "" {
			return fmt.Errorf("line %d: %s needs a bind key", body.Line, n.Kind)
		}
		if n.List.Template == nil {
			return fmt.Errorf("line %d: %s needs a template", body.Line, n.Kind)
		}
		return nil
	case NodeBox:
		if err := checkKeys(body, "padding", "child"); err != nil {
			return err
		}
		n.Box = &BoxSpec{}
		return decodeOptional(body, n.Box)
	case NodeIf:
		n.If = &IfSpec{}
		if err := body.Decode(&n.If.Cond); err != nil {
			return err
		}
		if then, ok := fields["then"]; ok {
			if err := then.Decode(&n.If.Then); err != nil {
				return err
			}
		}
		if otherwise, ok := fields["else"]; ok {
			if err := otherwise.Decode(&n.If.Else); err != nil {
				return err
			}
		}
		return nil
	case NodeForEach:
		n.ForEach = &ForEachSpec{}
		if err := body.Decode(&n.ForEach.Key); err != nil {
			return err
		}
		template, ok := fields["template"]
		if !ok {
			return fmt.Errorf("line %d: foreach needs a template", value.Line)
		}
		return template.Decode(&n.ForEach.Template)
	}
	return nil
}

// decodeOptional decodes body into out, treating an empty value (`spacer:`)
// like an empty mapping.
func decodeOptional(body *yaml.Node, out any) error {
	if body.Kind == yaml.ScalarNode && body.Tag == "!!null" {
		return nil
	}
	return body.Decode(out)
}

func mappingKeys(value *yaml.Node) []string {
	if value.Kind != yaml.MappingNode {
		return nil
	}
	keys := make([]string, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		keys = append(keys, value.Content[i].Value)
	}
	return keys
}

func checkKeys(value *yaml.Node, allowed ...string) error {
	for i := 0; i+1 < len(value.Content) && value.Kind == yaml.MappingNode; i += 2 {
		key := value.Content[i]
		if !slices.Contains(allowed, key.Value) {
			return fmt.Errorf("line %d: unknown key %q", key.Line, key.Value)
		}
	}
	return nil
}

// ParseColor parses "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("malformed color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("malformed color %q", s)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
