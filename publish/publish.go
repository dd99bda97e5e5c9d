// Package publish lists download commands for exported artifacts hosted on
// GitHub and mirrored by jsDelivr, and checks that the hosted copies are readable.
package publish

import (
	"bytes"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/oarkflow/cikmapper/table"
	"github.com/oarkflow/cikmapper/utils"
)

const (
	gitHubRawBase = "https://raw.githubusercontent.com"
	jsDelivrBase  = "https://cdn.jsdelivr.net/gh"
)

const rstTemplate = `
**GitHub**

.. code-block:: console

%s

**jsDelivr**

.. code-block:: console

%s
`

// Target is where the output directory is published
type Target struct {
	Repo   string // owner/name
	Branch string
	// Dir is the output directory's path inside the repository.
	Dir string
}

func (t Target) file(variant, name string) string {
	return strings.TrimPrefix(path.Join(t.Dir, variant, name), "/")
}

func (t Target) gitHubURL(variant, name string) string {
	return fmt.Sprintf("%s/%s/%s/%s", gitHubRawBase, t.Repo, t.Branch, t.file(variant, name))
}

func (t Target) jsDelivrURL(variant, name string) string {
	return fmt.Sprintf("%s/%s@%s/%s", jsDelivrBase, t.Repo, t.Branch, t.file(variant, name))
}

// URLs holds one GitHub and one jsDelivr URL per artifact, in the same order.
type URLs struct {
	GitHub   []string
	JSDelivr []string
}

// All returns every URL
func (u *URLs) All() []string {
	return append(append([]string(nil), u.GitHub...), u.JSDelivr...)
}

// Collect builds URLs for every file in the variant directories under outputDir.
func Collect(outputDir string, t Target) (*URLs, error) {
	variants, err := os.ReadDir(outputDir)
	if err != nil {
		return nil, err
	}
	urls := &URLs{}
	for _, v := range variants {
		if !v.IsDir() {
			continue
		}
		files, err := os.ReadDir(filepath.Join(outputDir, v.Name()))
		if err != nil {
			return nil, err
		}
		names := make([]string, 0, len(files))
		for _, f := range files {
			if !f.IsDir() {
				names = append(names, f.Name())
			}
		}
		sort.Strings(names)
		for _, name := range names {
			urls.GitHub = append(urls.GitHub, t.gitHubURL(v.Name(), name))
			urls.JSDelivr = append(urls.JSDelivr, t.jsDelivrURL(v.Name(), name))
		}
	}
	return urls, nil
}

func curlLines(urls []string) string {
	lines := make([]string, 0, len(urls))
	for _, u := range urls {
		lines = append(lines, fmt.Sprintf("\t$ curl %s -O", u))
	}
	return strings.Join(lines, "\n")
}

// RST renders the curl commands as two reStructuredText console blocks.
func (u *URLs) RST() string {
	return fmt.Sprintf(rstTemplate, curlLines(u.GitHub), curlLines(u.JSDelivr))
}

// Fetcher returns the body found at url
type Fetcher interface {
	Fetch(url string) ([]byte, error)
}

// Check verifies that body is a readable artifact for url: JSON must be
// valid and CSV must parse. Gzip sidecars are decompressed first.
func Check(url string, body []byte) error {
	name := url
	if strings.HasSuffix(name, ".gz") {
		plain, err := utils.Decompress(body)
		if err != nil {
			return fmt.Errorf("invalid gzip at %s: %w", url, err)
		}
		body = plain
		name = strings.TrimSuffix(name, ".gz")
	}
	switch {
	case strings.HasSuffix(name, ".json"):
		if !gjson.ValidBytes(body) {
			return fmt.Errorf("invalid JSON at %s", url)
		}
	default:
		if _, err := table.ReadCSV(bytes.NewReader(body)); err != nil {
			return fmt.Errorf("invalid CSV at %s: %w", url, err)
		}
	}
	return nil
}

// Validate fetches every url and checks its body, stopping at the first failure.
func Validate(f Fetcher, urls []string) error {
	for _, u := range urls {
		body, err := f.Fetch(u)
		if err != nil {
			return err
		}
		if err := Check(u, body); err != nil {
			return err
		}
	}
	return nil
}
