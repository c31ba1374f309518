package doxygen

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/canton7/Dox2Word-sub000/internal/content"
	"github.com/canton7/Dox2Word-sub000/internal/doxml"
	"github.com/canton7/Dox2Word-sub000/internal/ir"
	"github.com/canton7/Dox2Word-sub000/internal/parser"
)

// Parser converts one compound file into an ir.Document.
type Parser struct {
	path     string
	resolver content.Resolver
	opts     parser.Options
	log      *slog.Logger
}

var _ parser.Parser = (*Parser)(nil)

// New creates a parser for the compound file at path. resolver is usually
// the directory's *Index and may be nil.
func New(path string, resolver content.Resolver, opts parser.Options) *Parser {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Parser{
		path:     path,
		resolver: resolver,
		opts:     opts,
		log:      log,
	}
}

// Parse reads the compound file. Content anomalies are logged; only an
// unreadable or malformed file is an error.
func (p *Parser) Parse() (*ir.Document, error) {
	def, err := doxml.LoadCompound(p.path)
	if err != nil {
		return nil, fmt.Errorf("failed to load compound: %w", err)
	}
	return p.compound(def), nil
}

// Close releases resources. The file is read in full by Parse.
func (p *Parser) Close() error {
	return nil
}

func (p *Parser) contentOptions(log *slog.Logger) content.Options {
	return content.Options{
		Logger:       log,
		Resolver:     p.resolver,
		ImageDir:     p.opts.ImageDir,
		ImageType:    p.opts.ImageType,
		SuppressXRef: p.opts.SuppressXRef,
	}
}

func (p *Parser) compound(def *doxml.Node) *ir.Document {
	id := def.Attr("id")
	log := p.log.With("compound", id)
	opts := p.contentOptions(log)

	doc := ir.NewDocument()
	doc.Metadata = ir.Metadata{
		ID:       id,
		Kind:     def.Attr("kind"),
		Name:     strings.TrimSpace(def.ChildText("compoundname")),
		Title:    strings.TrimSpace(def.ChildText("title")),
		Language: def.Attr("language"),
		Brief:    briefRuns(content.ParseNode(def.Child("briefdescription"), content.Context{}, opts)),
		Location: location(def.Child("location")),
	}
	doc.Add(content.ParseNode(def.Child("detaileddescription"), content.Context{}, opts)...)

	for _, sd := range def.ChildrenNamed("sectiondef") {
		section := ir.MemberSection{
			Kind:        sd.Attr("kind"),
			Title:       strings.TrimSpace(sd.ChildText("header")),
			Description: content.ParseNode(sd.Child("description"), content.Context{}, opts),
		}
		for _, md := range sd.ChildrenNamed("memberdef") {
			section.Members = append(section.Members, p.member(md, log))
		}
		if len(section.Members) == 0 && len(section.Description) == 0 {
			continue
		}
		doc.AddSection(section)
	}

	log.Debug("parsed compound", "kind", doc.Metadata.Kind, "blocks", len(doc.Content), "sections", len(doc.Sections))
	return doc
}

func (p *Parser) member(md *doxml.Node, log *slog.Logger) ir.Member {
	m := ir.Member{
		ID:         md.Attr("id"),
		Kind:       md.Attr("kind"),
		Name:       strings.TrimSpace(md.ChildText("name")),
		Definition: strings.TrimSpace(md.ChildText("definition")),
		Args:       strings.TrimSpace(md.ChildText("argsstring")),
		Static:     md.Attr("static") == "yes",
		Location:   location(md.Child("location")),
	}
	log = log.With("member", m.Name)
	opts := p.contentOptions(log)

	detail := md.Child("detaileddescription")
	m.Brief = content.ParseNode(md.Child("briefdescription"), content.Context{}, opts)
	m.Detail = content.ParseNode(detail, content.Context{}, opts)

	for _, pl := range findAll(detail, doxml.KindParameterList) {
		params := paramList(pl, opts)
		switch kind := pl.Attr("kind"); kind {
		case "param":
			m.Params = append(m.Params, params...)
		case "retval":
			m.RetVals = append(m.RetVals, params...)
		case "templateparam":
			m.TParams = append(m.TParams, params...)
		case "exception":
			m.Exceptions = append(m.Exceptions, params...)
		default:
			log.Warn("unknown parameter list kind", "kind", kind)
		}
	}

	for _, ss := range findAll(detail, doxml.KindSimpleSect) {
		if ss.Attr("kind") != "return" {
			continue
		}
		m.Returns = append(m.Returns, content.Parse(withoutTitle(ss.Children), content.Context{}, opts)...)
	}

	for _, ev := range md.ChildrenNamed("enumvalue") {
		e := ir.Enumerator{
			ID:          ev.Attr("id"),
			Name:        strings.TrimSpace(ev.ChildText("name")),
			Initializer: strings.TrimSpace(ev.ChildText("initializer")),
		}
		e.Description = append(content.ParseNode(ev.Child("briefdescription"), content.Context{}, opts),
			content.ParseNode(ev.Child("detaileddescription"), content.Context{}, opts)...)
		m.Enumerators = append(m.Enumerators, e)
	}

	p.matchDeclared(&m, md, log)
	return m
}

// matchDeclared copies declared parameter types onto the documented ones
// and warns about declared parameters and return values with no
// documentation.
func (p *Parser) matchDeclared(m *ir.Member, md *doxml.Node, log *slog.Logger) {
	documentedFunc := m.Kind == "function" && (len(m.Brief) > 0 || len(m.Detail) > 0)
	if documentedFunc && len(m.Returns) == 0 && len(m.RetVals) == 0 {
		if typ := strings.TrimSpace(md.ChildText("type")); returnsValue(typ) {
			log.Warn("return value is not documented", "type", typ)
		}
	}

	documented := make(map[string]int, len(m.Params))
	for i, param := range m.Params {
		documented[param.Name] = i
	}

	for _, decl := range md.ChildrenNamed("param") {
		name := strings.TrimSpace(decl.ChildText("declname"))
		if name == "" {
			name = strings.TrimSpace(decl.ChildText("defname"))
		}
		if name == "" {
			continue
		}
		if i, ok := documented[name]; ok {
			if m.Params[i].Type == "" {
				m.Params[i].Type = strings.TrimSpace(decl.ChildText("type"))
			}
			continue
		}
		if documentedFunc {
			log.Warn("parameter is not documented", "param", name)
		}
	}
}

var storageQualifiers = map[string]bool{
	"virtual": true, "inline": true, "static": true, "constexpr": true,
	"explicit": true, "friend": true, "extern": true,
}

// returnsValue reports whether a declared return type yields a value.
// Constructors and destructors have no type.
func returnsValue(typ string) bool {
	fields := strings.Fields(typ)
	for len(fields) > 0 && storageQualifiers[fields[0]] {
		fields = fields[1:]
	}
	return len(fields) > 0 && !(len(fields) == 1 && fields[0] == "void")
}

func paramList(pl *doxml.Node, opts content.Options) []ir.Param {
	var out []ir.Param
	for _, item := range pl.ChildrenNamed("parameteritem") {
		desc := item.Child("parameterdescription")
		for _, names := range item.ChildrenNamed("parameternamelist") {
			typ := strings.TrimSpace(names.ChildText("parametertype"))
			for _, pn := range names.ChildrenNamed("parametername") {
				out = append(out, ir.Param{
					Name:        strings.TrimSpace(pn.TextContent()),
					Type:        typ,
					Direction:   pn.Attr("direction"),
					Description: content.ParseNode(desc, content.Context{}, opts),
				})
			}
		}
	}
	return out
}

// findAll returns the nodes of the given kind under n, not descending into
// a match.
func findAll(n *doxml.Node, kind doxml.Kind) []*doxml.Node {
	if n == nil {
		return nil
	}
	var out []*doxml.Node
	for _, c := range n.Children {
		if c.Kind == kind {
			out = append(out, c)
			continue
		}
		out = append(out, findAll(c, kind)...)
	}
	return out
}

func withoutTitle(nodes []*doxml.Node) []*doxml.Node {
	out := make([]*doxml.Node, 0, len(nodes))
	for _, n := range nodes {
		if n.Kind != doxml.KindTitle {
			out = append(out, n)
		}
	}
	return out
}

// briefRuns joins the paragraphs of a brief description into one line.
func briefRuns(blocks []ir.Block) []ir.Run {
	var runs []ir.Run
	for _, b := range blocks {
		if b.Type != ir.BlockTypeParagraph || b.Paragraph == nil {
			continue
		}
		if len(runs) > 0 {
			runs = append(runs, ir.NewRun(" ", ir.TextStyle{}))
		}
		runs = append(runs, b.Paragraph.Runs...)
	}
	return runs
}

func location(n *doxml.Node) ir.Location {
	if n == nil {
		return ir.Location{}
	}
	line, _ := strconv.Atoi(n.Attr("line"))
	return ir.Location{File: n.Attr("file"), Line: line}
}
