// Command codegen generates the HCI command types from a JSON table.
//
//	codegen -in cmd.json -out cmd_gen.go
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"go/format"
	"io/ioutil"
	"strconv"
	"strings"
	"text/template"

	"github.com/mgutz/logxi/v1"
	"github.com/pkg/errors"
)

var logger = log.New("codegen")

var (
	in  = flag.String("in", "cmd.json", "command table")
	out = flag.String("out", "cmd_gen.go", "generated file")
	pkg = flag.String("pkg", "cmd", "package name")
)

type field struct {
	Name string
	Type string
}

type command struct {
	Name   string  // Command Name
	Spec   string  // Section of the Core specification
	OGF    string  // OpCode Group Field
	OCF    string  // OpCode Command Field
	Param  []field // Command Parameters
	Return []field // Return Parameters
}

type table struct {
	Commands []command
}

// size returns the wire size of the parameters.
func size(ff []field) (int, error) {
	n := 0
	for _, f := range ff {
		switch {
		case f.Type == "uint8":
			n++
		case f.Type == "uint16":
			n += 2
		case f.Type == "uint64":
			n += 8
		case strings.HasPrefix(f.Type, "[") && strings.HasSuffix(f.Type, "]byte"):
			l, err := strconv.Atoi(f.Type[1 : len(f.Type)-5])
			if err != nil {
				return 0, errors.Wrapf(err, "field %s", f.Name)
			}
			n += l
		default:
			return 0, errors.Errorf("field %s: unsupported type %s", f.Name, f.Type)
		}
	}
	return n, nil
}

var funcMap = template.FuncMap{
	"esc": func(s string) string {
		return strings.NewReplacer(" ", "", "/", "", "_", "").Replace(s)
	},
	"size": size,
}

const tmpl = `{{define "fields"}}{{if .}} {
{{range .}}	{{.Name}} {{.Type}}
{{end}}}{{else}}{}{{end}}{{end}}
{{range .Commands}}{{$n := esc .Name}}
// {{$n}} implements {{.Name}} ({{.OGF}}|{{.OCF}}) [{{.Spec}}]
type {{$n}} struct{{template "fields" .Param}}

func (c *{{$n}}) String() string {
	return "{{.Name}} ({{.OGF}}|{{.OCF}})"
}

// OpCode returns the opcode of the command.
func (c *{{$n}}) OpCode() int { return {{.OGF}}<<10 | {{.OCF}} }

// Len returns the length of the command.
func (c *{{$n}}) Len() int { return {{size .Param}} }

// Marshal serializes the command parameters into binary form.
func (c *{{$n}}) Marshal(b []byte) error {
	return marshal(c, b)
}
{{if .Return}}
// {{$n}}RP returns the return parameter of {{.Name}}
type {{$n}}RP struct{{template "fields" .Return}}

// Unmarshal de-serializes the binary data and stores the result in the receiver.
func (c *{{$n}}RP) Unmarshal(b []byte) error {
	return unmarshal(c, b)
}
{{end}}{{end}}`

func generate(b []byte, pkg string) ([]byte, error) {
	var t table
	if err := json.Unmarshal(b, &t); err != nil {
		return nil, errors.Wrap(err, "can't read command table")
	}
	tp, err := template.New("cmd").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return nil, errors.Wrap(err, "can't parse template")
	}
	buf := &bytes.Buffer{}
	buf.WriteString("// Code generated by codegen; DO NOT EDIT.\n\npackage " + pkg + "\n")
	if err := tp.Execute(buf, t); err != nil {
		return nil, errors.Wrap(err, "can't execute template")
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, errors.Wrap(err, "can't format generated source")
	}
	return src, nil
}

func main() {
	flag.Parse()

	b, err := ioutil.ReadFile(*in)
	if err != nil {
		logger.Fatal("can't read input", "err", err)
	}
	src, err := generate(b, *pkg)
	if err != nil {
		logger.Fatal("can't generate", "err", err)
	}
	if err := ioutil.WriteFile(*out, src, 0644); err != nil {
		logger.Fatal("can't write output", "err", err)
	}
	logger.Info("generated", "out", *out, "bytes", len(src))
}
