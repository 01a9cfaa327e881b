// Package yamlpatch edits the target project's YAML configuration
// document. Edits go through the yaml.v3 Node API so comments, key order
// and formatting of existing content survive the round trip.
//
// All edits are additive: existing keys are never overwritten, and the
// file is only rewritten when at least one key was inserted.
package yamlpatch

import (
	"bytes"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/retrokit/retrogen/pkg/fsutil"
	"github.com/retrokit/retrogen/pkg/logging"
	"github.com/retrokit/retrogen/pkg/project"
	"github.com/retrokit/retrogen/pkg/report"
)

// Fixed defaults inserted under http-client when absent.
const (
	DefaultTimeout        = 30
	DefaultConnectTimeout = 10
	DefaultLoggingLevel   = "BODY"
)

// CredentialSentinel marks credential values the operator must fill in.
const CredentialSentinel = "TODO_ADD_VALUE"

// Top-level section names.
const (
	SectionHTTPClient  = "http-client"
	SectionCredentials = "credentials"
)

// Options describes one YAML patch run.
type Options struct {
	// DefaultPath is the conventional document location tried first
	DefaultPath string
	// SearchRoot is walked for FileName when DefaultPath is absent
	SearchRoot string
	// FileName is the document's base name, for fallback search and outcomes
	FileName string
	// ServiceID keys the per-service block under http-client
	ServiceID string
	// BaseURL is the service's base-url value
	BaseURL string
	// Credentials lists credential field names; empty means no
	// credentials section is touched
	Credentials []string
}

// Apply patches the YAML document. Outcomes land in rep; missing or
// unparsable documents are warnings, not fatal errors.
func Apply(opts Options, rep *report.Report) {
	logger := logging.GetLogger("yamlpatch")

	path := opts.DefaultPath
	if _, err := os.Stat(path); err != nil {
		logger.Debug().Str("path", path).Msg("YAML document not at default location, searching")
		path = project.FindFile(opts.SearchRoot, opts.FileName)
		if path == "" {
			rep.Warned(opts.FileName, "not found in project")
			return
		}
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		rep.Warned(opts.FileName, "unreadable: "+err.Error())
		return
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		rep.Warned(opts.FileName, "not valid YAML: "+err.Error())
		return
	}
	root := documentRoot(&doc)
	if root == nil {
		rep.Warned(opts.FileName, "document root is not a mapping")
		return
	}

	dirty := false

	httpClient := ensureMapping(root, SectionHTTPClient)
	if httpClient == nil {
		rep.Warned(opts.FileName, SectionHTTPClient+" is not a mapping")
		return
	}

	for _, def := range []struct {
		key   string
		value *yaml.Node
	}{
		{"timeout", intNode(DefaultTimeout)},
		{"logging-level", strNode(DefaultLoggingLevel)},
		{"connect-timeout", intNode(DefaultConnectTimeout)},
	} {
		if findValue(httpClient, def.key) == nil {
			appendPair(httpClient, def.key, def.value)
			rep.Created(SectionHTTPClient + "." + def.key)
			dirty = true
		}
	}

	serviceKey := SectionHTTPClient + "." + opts.ServiceID
	if findValue(httpClient, opts.ServiceID) != nil {
		rep.Skipped(serviceKey, "already present")
	} else {
		service := mappingNode()
		appendPair(service, "base-url", strNode(opts.BaseURL))
		appendPair(service, "logging-level", refNode(SectionHTTPClient+".logging-level"))
		appendPair(service, "read-timeout", refNode(SectionHTTPClient+".timeout"))
		appendPair(service, "connect-timeout", refNode(SectionHTTPClient+".connect-timeout"))
		appendPair(httpClient, opts.ServiceID, service)
		rep.Created(serviceKey)
		dirty = true
	}

	if len(opts.Credentials) > 0 {
		credentials := ensureMapping(root, SectionCredentials)
		credKey := SectionCredentials + "." + opts.ServiceID
		switch {
		case credentials == nil:
			rep.Warned(opts.FileName, SectionCredentials+" is not a mapping")
		case findValue(credentials, opts.ServiceID) != nil:
			rep.Skipped(credKey, "already present")
		default:
			entry := mappingNode()
			for _, field := range opts.Credentials {
				appendPair(entry, field, strNode(CredentialSentinel))
			}
			appendPair(credentials, opts.ServiceID, entry)
			rep.Created(credKey)
			dirty = true
		}
	}

	if !dirty {
		logger.Debug().Str("path", path).Msg("YAML document unchanged, not writing")
		return
	}

	out, err := encode(&doc)
	if err != nil {
		rep.Add(report.StatusFailed, opts.FileName, err.Error())
		return
	}
	if err := fsutil.AtomicWriteFile(path, out, 0644); err != nil {
		rep.Add(report.StatusFailed, opts.FileName, err.Error())
		return
	}
	logger.Debug().Str("path", path).Msg("YAML document patched")
}

// documentRoot returns the document's top-level mapping, normalizing
// empty and null documents to a fresh mapping. A non-mapping root (a
// scalar or sequence document) returns nil; the caller must not edit it.
func documentRoot(doc *yaml.Node) *yaml.Node {
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		root := mappingNode()
		doc.Kind = yaml.DocumentNode
		doc.Content = []*yaml.Node{root}
		return root
	}
	root := doc.Content[0]
	if root.Kind == yaml.MappingNode {
		return root
	}
	if isNullNode(root) {
		toMapping(root)
		return root
	}
	return nil
}

// findValue returns the value node for key in a mapping, or nil.
func findValue(mapping *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}

// ensureMapping returns the mapping under key, creating it when absent.
// A bare "key:" line parses as a null scalar and is converted to a
// mapping in place. Any other non-mapping value returns nil: appending
// children to a scalar would be silently dropped by the encoder, so the
// caller must warn and leave that section alone.
func ensureMapping(parent *yaml.Node, key string) *yaml.Node {
	if v := findValue(parent, key); v != nil {
		if v.Kind == yaml.MappingNode {
			return v
		}
		if isNullNode(v) {
			toMapping(v)
			return v
		}
		return nil
	}
	m := mappingNode()
	appendPair(parent, key, m)
	return m
}

// isNullNode reports whether a node is an explicit or implicit YAML null.
func isNullNode(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && (n.Tag == "!!null" || n.Tag == "")
}

// toMapping converts a null scalar into an empty mapping in place,
// keeping any comments attached to the node.
func toMapping(n *yaml.Node) {
	n.Kind = yaml.MappingNode
	n.Tag = "!!map"
	n.Value = ""
	n.Style = 0
}

func appendPair(mapping *yaml.Node, key string, value *yaml.Node) {
	mapping.Content = append(mapping.Content, keyNode(key), value)
}

func mappingNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

func keyNode(key string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}
}

func strNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

func intNode(value int) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(value)}
}

// refNode builds a ${...} property reference, single-quoted so the
// reference syntax is visually distinct from literal values.
func refNode(key string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Style: yaml.SingleQuotedStyle, Value: "${" + key + "}"}
}

func encode(doc *yaml.Node) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
