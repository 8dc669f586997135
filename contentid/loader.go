/*
Copyright 2024 - 2026 the ChatterNet authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package contentid

import (
	"embed"
	"fmt"
	"sync"

	"github.com/piprate/json-gold/ld"
)

// JSON-LD context IRIs resolvable during canonicalization.
// Everything else is rejected: document IDs must not depend on
// the availability or content of remote servers.
const (
	ActivityStreamsContext = "https://www.w3.org/ns/activitystreams"
	Ed25519SuiteContext    = "https://w3id.org/security/suites/ed25519-2020/v1"
)

//go:embed contexts
var contextsFS embed.FS

var contextPaths = map[string]string{
	ActivityStreamsContext: "contexts/activitystreams.jsonld",
	Ed25519SuiteContext:    "contexts/ed25519-2020.jsonld",
}

// offlineLoader refuses to fetch documents: only the cached contexts resolve.
type offlineLoader struct{}

func (offlineLoader) LoadDocument(u string) (*ld.RemoteDocument, error) {
	return nil, fmt.Errorf("%w: %s", ErrUnresolvableContext, u)
}

var documentLoader = sync.OnceValues(func() (*ld.CachingDocumentLoader, error) {
	loader := ld.NewCachingDocumentLoader(offlineLoader{})

	for iri, path := range contextPaths {
		f, err := contextsFS.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open context %s: %w", iri, err)
		}

		doc, err := ld.DocumentFromReader(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to parse context %s: %w", iri, err)
		}

		loader.AddDocument(iri, doc)
	}

	return loader, nil
})
