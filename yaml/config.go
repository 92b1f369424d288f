// Package yaml loads extractor configuration and batch manifests from YAML
// (or JSON, which YAML accepts) using gopkg.in/yaml.v3.
//
// The rules mapping is read node by node so that domain declaration order,
// which determines output order, survives loading. Domain keys starting with
// "*" must be quoted in YAML, otherwise they parse as aliases.
package yaml

import (
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/fwojciec/htmlsift"
	"gopkg.in/yaml.v3"
)

// LoadConfig reads the configuration file at path.
// Returns ENOTFOUND if the file does not exist.
func LoadConfig(path string) (*htmlsift.Config, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, htmlsift.Errorf(htmlsift.ENOTFOUND, "config file %q not found", path)
	} else if err != nil {
		return nil, err
	}
	defer f.Close()

	return ParseConfig(f)
}

// ParseConfig decodes and validates a configuration document.
// An empty document yields a configuration with no rules. Every schema
// violation is reported as EINVALID.
func ParseConfig(r io.Reader) (*htmlsift.Config, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); errors.Is(err, io.EOF) {
		return &htmlsift.Config{}, nil
	} else if err != nil {
		return nil, htmlsift.Errorf(htmlsift.EINVALID, "failed to parse config: %v", err)
	}

	root := resolve(&doc)
	if isNull(root) {
		return &htmlsift.Config{}, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, htmlsift.Errorf(htmlsift.EINVALID, "config must be a mapping")
	}

	cfg := &htmlsift.Config{}
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], resolve(root.Content[i+1])
		switch key.Value {
		case "rules":
			rules, err := parseRuleSet(val)
			if err != nil {
				return nil, err
			}
			cfg.Rules = rules
		case "parser":
			if isNull(val) {
				continue
			}
			if val.Kind != yaml.MappingNode {
				return nil, htmlsift.Errorf(htmlsift.EINVALID, "parser options must be a mapping")
			}
			if err := val.Decode(&cfg.Parser); err != nil {
				return nil, htmlsift.Errorf(htmlsift.EINVALID, "invalid parser options: %v", err)
			}
		case "format":
			s, err := stringValue(val, "format")
			if err != nil {
				return nil, err
			}
			cfg.Format = htmlsift.Format(s)
		case "digest":
			s, err := stringValue(val, "digest")
			if err != nil {
				return nil, err
			}
			cfg.Digest = htmlsift.DigestAlgorithm(s)
		default:
			return nil, htmlsift.Errorf(htmlsift.EINVALID, "unknown config key %q", key.Value)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parseRuleSet reads the domain -> rules mapping in declaration order.
func parseRuleSet(n *yaml.Node) (htmlsift.RuleSet, error) {
	if isNull(n) {
		return nil, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, htmlsift.Errorf(htmlsift.EINVALID, "rules must be a mapping of domain to rule list")
	}

	rs := make(htmlsift.RuleSet, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		domain, err := stringValue(n.Content[i], "rule domain")
		if err != nil {
			return nil, err
		}

		list := resolve(n.Content[i+1])
		d := htmlsift.DomainRules{Domain: domain}
		if !isNull(list) {
			if list.Kind != yaml.SequenceNode {
				return nil, htmlsift.Errorf(htmlsift.EINVALID, "domain %q: rules must be a list", domain)
			}
			for j, item := range list.Content {
				rule, err := parseRule(resolve(item))
				if err != nil {
					return nil, htmlsift.Errorf(htmlsift.EINVALID, "domain %q rule %d: %s", domain, j, htmlsift.ErrorMessage(err))
				}
				d.Rules = append(d.Rules, rule)
			}
		}
		rs = append(rs, d)
	}
	return rs, nil
}

func parseRule(n *yaml.Node) (htmlsift.ExtractionRule, error) {
	var rule htmlsift.ExtractionRule
	if n.Kind != yaml.MappingNode {
		return rule, htmlsift.Errorf(htmlsift.EINVALID, "rule must be a mapping")
	}

	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i].Value, resolve(n.Content[i+1])
		var err error
		switch key {
		case "pattern":
			rule.Pattern, err = stringValue(val, "pattern")
		case "contentSelector":
			rule.ContentSelector, err = stringValue(val, "contentSelector")
		case "all":
			if val.Kind != yaml.ScalarNode || val.Tag != "!!bool" {
				return rule, htmlsift.Errorf(htmlsift.EINVALID, "all must be a boolean")
			}
			err = val.Decode(&rule.All)
		default:
			return rule, htmlsift.Errorf(htmlsift.EINVALID, "unknown rule key %q", key)
		}
		if err != nil {
			return rule, err
		}
	}

	if err := rule.Validate(); err != nil {
		return rule, err
	}
	return rule, nil
}

// stringValue returns the value of a string scalar.
func stringValue(n *yaml.Node, field string) (string, error) {
	if n.Kind != yaml.ScalarNode || n.Tag != "!!str" {
		return "", htmlsift.Errorf(htmlsift.EINVALID, "%s must be a string", field)
	}
	return n.Value, nil
}

// resolve follows document wrappers and aliases to the underlying node.
func resolve(n *yaml.Node) *yaml.Node {
	for n != nil {
		switch {
		case n.Kind == yaml.DocumentNode && len(n.Content) > 0:
			n = n.Content[0]
		case n.Kind == yaml.AliasNode && n.Alias != nil:
			n = n.Alias
		default:
			return n
		}
	}
	return n
}

func isNull(n *yaml.Node) bool {
	return n == nil || (n.Kind == yaml.ScalarNode && n.Tag == "!!null") || n.Kind == 0
}
