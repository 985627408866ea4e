// Package access decides, before any handler runs, whether a request may
// proceed anonymously, must carry a valid bearer token, or is rejected.
package access

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/ErlanBelekov/shop-api/internal/auth"
)

const bearerScheme = "Bearer"

// Verifier is satisfied by *auth.Verifier.
type Verifier interface {
	Verify(raw string) (*auth.Claims, error)
}

// Rule exempts requests from token verification.
//
// Pattern segments are matched literally, except that ":name" matches any
// single segment and a final "*" matches the rest of the path at any depth.
// A final segment ending in "*", such as "img-*", matches any segment with
// that prefix plus everything below it.
// An empty Methods list exempts every method.
type Rule struct {
	Pattern string
	Methods []string
}

func (r Rule) Matches(method, path string) bool {
	if len(r.Methods) > 0 && !containsFold(r.Methods, method) {
		return false
	}
	return matchPattern(splitPath(r.Pattern), splitPath(path))
}

func matchPattern(pattern, path []string) bool {
	for i, seg := range pattern {
		if seg == "*" && i == len(pattern)-1 {
			return !containsFold(path[min(i, len(path)):], "..")
		}
		if i >= len(path) {
			return false
		}
		if strings.HasSuffix(seg, "*") && i == len(pattern)-1 {
			return strings.HasPrefix(path[i], strings.TrimSuffix(seg, "*")) &&
				!containsFold(path[i:], "..")
		}
		switch {
		case path[i] == "..":
			return false
		case strings.HasPrefix(seg, ":"):
			if path[i] == "" {
				return false
			}
		case seg != path[i]:
			return false
		}
	}
	return len(pattern) == len(path)
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

// Policy gates requests with an explicit allow-list plus token verification.
type Policy struct {
	rules    []Rule
	verifier Verifier
	pipeline Pipeline
}

func NewPolicy(verifier Verifier, rules ...Rule) *Policy {
	p := &Policy{rules: rules, verifier: verifier}
	p.pipeline = Pipeline{
		{Name: "allow-list", Run: p.allowList},
		{Name: "bearer", Run: p.bearer},
		{Name: "verify", Run: p.verify},
	}
	return p
}

// Evaluate runs the pipeline. A Continue result carries the identity when
// the request was not public.
func (p *Policy) Evaluate(req Request) Result {
	return p.pipeline.Run(req)
}

// Exempt reports whether method+path bypasses verification.
func (p *Policy) Exempt(method, path string) bool {
	for _, r := range p.rules {
		if r.Matches(method, path) {
			return true
		}
	}
	return false
}

func (p *Policy) allowList(req Request) Result {
	req.Public = p.Exempt(req.Method, req.Path)
	return Continue(req)
}

func (p *Policy) bearer(req Request) Result {
	if req.Public {
		return Continue(req)
	}
	if req.Authorization == "" {
		return Reject(auth.ErrTokenMissing)
	}
	// The scheme is case-insensitive (RFC 7235).
	scheme, token, _ := strings.Cut(strings.TrimSpace(req.Authorization), " ")
	if !strings.EqualFold(scheme, bearerScheme) {
		return Reject(fmt.Errorf("%w: expected bearer scheme", auth.ErrTokenMalformed))
	}
	req.Token = strings.TrimSpace(token)
	if req.Token == "" {
		return Reject(auth.ErrTokenMissing)
	}
	return Continue(req)
}

func (p *Policy) verify(req Request) Result {
	if req.Public {
		return Continue(req)
	}
	claims, err := p.verifier.Verify(req.Token)
	if err != nil {
		return Reject(err)
	}
	req.Identity = claims
	return Continue(req)
}

// DefaultRules is the public surface of the shop API. apiPrefix is the
// mount point of the resource routes, e.g. "/api/v1".
func DefaultRules(apiPrefix string) []Rule {
	get := []string{http.MethodGet, http.MethodHead}
	return []Rule{
		{Pattern: apiPrefix + "/products", Methods: []string{http.MethodGet, http.MethodHead, http.MethodOptions}},
		{Pattern: apiPrefix + "/products/:id", Methods: get},
		{Pattern: apiPrefix + "/products/get/count", Methods: get},
		{Pattern: apiPrefix + "/products/get/featured/:count", Methods: get},
		{Pattern: apiPrefix + "/categories", Methods: get},
		{Pattern: apiPrefix + "/categories/:id", Methods: get},
		{Pattern: apiPrefix + "/users/login", Methods: []string{http.MethodPost}},
		{Pattern: apiPrefix + "/users/register", Methods: []string{http.MethodPost}},
		{Pattern: "/public/uploads/*", Methods: get},
		{Pattern: "/healthz", Methods: get},
		{Pattern: "/readyz", Methods: get},
	}
}
