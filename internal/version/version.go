// Package version resolves the latest released tag of a GitHub repository.
package version

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/mod/semver"
)

// ErrNoTags is returned when a repository has no tags.
var ErrNoTags = errors.New("no tags found for the repository")

const tagPrefix = "refs/tags/"

// Resolver queries the GitHub matching-refs API.
type Resolver struct {
	// BaseURL is the API root, e.g. https://api.github.com.
	BaseURL string
	// Token is sent as a bearer token when non-empty.
	Token  string
	Client *http.Client
}

// NewResolver returns a Resolver using http.DefaultClient.
func NewResolver(baseURL, token string) *Resolver {
	return &Resolver{BaseURL: strings.TrimSuffix(baseURL, "/"), Token: token, Client: http.DefaultClient}
}

type ref struct {
	Ref string `json:"ref"`
}

// Tags returns every tag of owner/repo in the order the API lists them.
func (r *Resolver) Tags(ctx context.Context, owner, repo string) ([]string, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/git/matching-refs/tags", r.BaseURL, owner, repo)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/vnd.github+json")

	if r.Token != "" {
		req.Header.Set("Authorization", "Bearer "+r.Token)
	}

	client := r.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching tags for %s/%s: %w", owner, repo, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("fetching tags for %s/%s: %s: %s", owner, repo, resp.Status, strings.TrimSpace(string(body)))
	}

	var refs []ref
	if err := json.NewDecoder(resp.Body).Decode(&refs); err != nil {
		return nil, fmt.Errorf("decoding tags for %s/%s: %w", owner, repo, err)
	}

	tags := make([]string, 0, len(refs))
	for _, r := range refs {
		tags = append(tags, strings.TrimPrefix(r.Ref, tagPrefix))
	}

	return tags, nil
}

// Latest returns the last tag listed by the API. The API lists tags in
// ascending ref order, which is not a semantic version sort; a warning is
// logged when the two disagree but the last tag is still returned.
func (r *Resolver) Latest(ctx context.Context, owner, repo string) (string, error) {
	tags, err := r.Tags(ctx, owner, repo)
	if err != nil {
		return "", err
	}

	if len(tags) == 0 {
		return "", fmt.Errorf("%s/%s: %w", owner, repo, ErrNoTags)
	}

	last := tags[len(tags)-1]
	if newest := Newest(tags); newest != "" && newest != last {
		slog.Warn("last listed tag is not the newest release",
			"repo", owner+"/"+repo, "last", last, "newest", newest)
	}

	return last, nil
}

// Newest returns the semantically greatest tag, ignoring tags that do not
// carry a recognizable version. It returns "" if none do.
func Newest(tags []string) string {
	var newest, newestSemver string

	for _, tag := range tags {
		v := Semver(tag)
		if v == "" {
			continue
		}

		if newestSemver == "" || semver.Compare(v, newestSemver) > 0 {
			newest, newestSemver = tag, v
		}
	}

	return newest
}

// Semver converts a Godot-style tag to a semantic version string:
// "godot-4.3-stable" and "4.3-stable" both become "v4.3.0-stable".
// It returns "" when the tag has no valid version.
func Semver(tag string) string {
	i := strings.IndexFunc(tag, func(r rune) bool { return r >= '0' && r <= '9' })
	if i < 0 {
		return ""
	}

	numeric, suffix, hasSuffix := strings.Cut(tag[i:], "-")
	for strings.Count(numeric, ".") < 2 {
		numeric += ".0"
	}

	v := "v" + numeric
	if hasSuffix {
		v += "-" + suffix
	}

	if !semver.IsValid(v) {
		return ""
	}

	return v
}

// Release returns the numeric release of a tag, the first dash-separated
// field that starts with a digit: "godot-4.3-stable" -> "4.3".
func Release(tag string) string {
	for field := range strings.SplitSeq(tag, "-") {
		if field != "" && field[0] >= '0' && field[0] <= '9' {
			return field
		}
	}

	return tag
}
