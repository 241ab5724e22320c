package model

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/wippyai/hierquery/errors"
	"github.com/wippyai/hierquery/vpi"
)

// fileDoc is the YAML layout of a design file.
type fileDoc struct {
	Designs []designDoc `yaml:"designs"`
}

type designDoc struct {
	Name       string    `yaml:"name"`
	Elaborated bool      `yaml:"elaborated,omitempty"`
	AllModules []nodeDoc `yaml:"allModules,omitempty"`
	TopModules []nodeDoc `yaml:"topModules,omitempty"`
}

type nodeDoc struct {
	Kind     string    `yaml:"kind"`
	Name     string    `yaml:"name,omitempty"`
	FullName string    `yaml:"fullName,omitempty"`
	DefName  string    `yaml:"defName,omitempty"`
	File     string    `yaml:"file,omitempty"`
	Line     int       `yaml:"line,omitempty"`
	Column   int       `yaml:"column,omitempty"`
	Size     *int64    `yaml:"size,omitempty"`
	DefFile  string    `yaml:"defFile,omitempty"`
	DefLine  int       `yaml:"defLine,omitempty"`
	Children []nodeDoc `yaml:"children,omitempty"`
}

func readYAML(path string) ([]*object, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.IO(errors.PhaseRestore, "open design file", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)

	var doc fileDoc
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, errors.ParseFailed("yaml design "+path, err)
	}

	designs := make([]*object, 0, len(doc.Designs))
	for i, dd := range doc.Designs {
		d, err := dd.toObject([]string{"designs", strconv.Itoa(i)})
		if err != nil {
			return nil, err
		}
		designs = append(designs, d)
	}
	return designs, nil
}

func (dd designDoc) toObject(path []string) (*object, error) {
	d := newObject(vpi.KindDesign)
	d.name = dd.Name
	d.elaborated = dd.Elaborated

	var err error
	if d.allModules, err = nodesToObjects(dd.AllModules, append(path, "allModules")); err != nil {
		return nil, err
	}
	if d.topModules, err = nodesToObjects(dd.TopModules, append(path, "topModules")); err != nil {
		return nil, err
	}
	return d, nil
}

func nodesToObjects(nodes []nodeDoc, path []string) ([]*object, error) {
	out := make([]*object, 0, len(nodes))
	for i, n := range nodes {
		o, err := n.toObject(append(path[:len(path):len(path)], strconv.Itoa(i)))
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}

func (n nodeDoc) toObject(path []string) (*object, error) {
	kind, ok := vpi.ParseKind(n.Kind)
	if !ok {
		return nil, errors.InvalidData(errors.PhaseRestore, path, fmt.Sprintf("unknown kind %q", n.Kind))
	}
	if kind == vpi.KindDesign {
		return nil, errors.InvalidData(errors.PhaseRestore, path, "design nested inside a design")
	}

	o := newObject(kind)
	o.name = n.Name
	o.fullName = n.FullName
	o.defName = n.DefName
	o.file = n.File
	o.line = n.Line
	o.column = n.Column
	o.defFile = n.DefFile
	o.defLine = n.DefLine
	if n.Size != nil {
		o.size = *n.Size
	}

	var err error
	if o.children, err = nodesToObjects(n.Children, append(path[:len(path):len(path)], "children")); err != nil {
		return nil, err
	}
	return o, nil
}

func writeYAML(path string, designs []*object) error {
	doc := fileDoc{Designs: make([]designDoc, 0, len(designs))}
	for _, d := range designs {
		doc.Designs = append(doc.Designs, designDoc{
			Name:       d.name,
			Elaborated: d.elaborated,
			AllModules: objectsToNodes(d.allModules),
			TopModules: objectsToNodes(d.topModules),
		})
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.IO(errors.PhaseEncode, "create design file", err)
	}

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		f.Close()
		return errors.Wrap(errors.PhaseEncode, errors.KindInvalidData, err, "encode yaml design")
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return errors.IO(errors.PhaseEncode, "flush design file", err)
	}
	if err := f.Close(); err != nil {
		return errors.IO(errors.PhaseEncode, "close design file", err)
	}
	return nil
}

func objectsToNodes(objs []*object) []nodeDoc {
	if len(objs) == 0 {
		return nil
	}
	out := make([]nodeDoc, 0, len(objs))
	for _, o := range objs {
		n := nodeDoc{
			Kind:     o.kind.String(),
			Name:     o.name,
			FullName: o.fullName,
			DefName:  o.defName,
			File:     o.file,
			Line:     o.line,
			Column:   o.column,
			DefFile:  o.defFile,
			DefLine:  o.defLine,
			Children: objectsToNodes(o.children),
		}
		if o.size != vpi.Undefined {
			size := o.size
			n.Size = &size
		}
		out = append(out, n)
	}
	return out
}
