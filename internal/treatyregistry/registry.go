package treatyregistry

import (
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	json "github.com/goccy/go-json"

	"reinsurance-engine/internal/model"
)

var (
	registryURL string
	cache       sync.Map
	client      *http.Client
)

func init() {
	registryURL = os.Getenv("TREATY_REGISTRY_URL")
	if registryURL != "" {
		client = &http.Client{
			Timeout: 2 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 100,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}
}

type treatyResponse struct {
	TreatyRef string            `json:"treaty_ref"`
	Terms     model.TreatyTerms `json:"terms"`
}

// GetTerms resolves a named treaty preset from the external registry.
// Resolved terms are cached for the process lifetime. Reports false when
// no registry is configured or the reference cannot be fetched; inventing
// default terms would silently corrupt money calculations, so there is no
// fallback.
func GetTerms(ref string) (model.TreatyTerms, bool) {
	if registryURL == "" {
		return model.TreatyTerms{}, false
	}

	if cached, ok := cache.Load(ref); ok {
		return cached.(model.TreatyTerms), true
	}

	terms, ok := fetchTerms(ref)
	if ok {
		cache.Store(ref, terms)
	}
	return terms, ok
}

func fetchTerms(ref string) (model.TreatyTerms, bool) {
	resp, err := client.Get(registryURL + "/treaties/" + ref)
	if err != nil {
		return model.TreatyTerms{}, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return model.TreatyTerms{}, false
	}

	var tr treatyResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return model.TreatyTerms{}, false
	}
	return tr.Terms, true
}
