package beacon

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/driftlock/timevault/internal/chain"
	"github.com/driftlock/timevault/internal/vaulterrors"
)

// HTTPClient talks to a drand HTTP relay's chain-info and public-round
// endpoints. Grounded on the shape of the retrieved
// other_examples/8d9de897_writerslogic-witnessd beacon_drand.go DrandClient,
// trimmed to the two operations the core actually needs.
type HTTPClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewHTTPClient returns a client against baseURL (e.g.
// "https://api.drand.sh/<chain-hash>").
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type chainInfoResponse struct {
	PublicKey   string `json:"public_key"`
	Period      uint64 `json:"period"`
	GenesisTime uint64 `json:"genesis_time"`
	Hash        string `json:"hash"`
	SchemeID    string `json:"schemeID"`
}

func (c *HTTPClient) ChainInfo(ctx context.Context) (chain.BeaconChain, error) {
	var resp chainInfoResponse
	if err := c.getJSON(ctx, c.BaseURL+"/info", &resp); err != nil {
		return chain.BeaconChain{}, err
	}
	pkBytes, err := hex.DecodeString(resp.PublicKey)
	if err != nil || len(pkBytes) != chain.PublicKeyLen {
		return chain.BeaconChain{}, vaulterrors.New(vaulterrors.KindMalformedEnvelope, "malformed chain public_key")
	}
	var pk [chain.PublicKeyLen]byte
	copy(pk[:], pkBytes)
	return chain.BeaconChain{
		PublicKey:      pk,
		PeriodSeconds:  resp.Period,
		GenesisSeconds: resp.GenesisTime,
		ChainHash:      resp.Hash,
		Scheme:         resp.SchemeID,
	}, nil
}

type publicRandResponse struct {
	Round      uint64 `json:"round"`
	Signature  string `json:"signature"`
}

func (c *HTTPClient) Signature(ctx context.Context, round uint64) ([]byte, error) {
	var resp publicRandResponse
	url := fmt.Sprintf("%s/public/%d", c.BaseURL, round)
	if err := c.getJSON(ctx, url, &resp); err != nil {
		return nil, err
	}
	if resp.Round < round {
		return nil, vaulterrors.New(vaulterrors.KindRoundNotYet, fmt.Sprintf("round %d not yet produced", round))
	}
	sig, err := hex.DecodeString(resp.Signature)
	if err != nil || len(sig) != SignatureLen {
		return nil, vaulterrors.New(vaulterrors.KindBeaconInvalid, "malformed signature encoding")
	}
	return sig, nil
}

func (c *HTTPClient) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return vaulterrors.Wrap(vaulterrors.KindNetworkUnavailable, err)
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return vaulterrors.Wrap(vaulterrors.KindNetworkUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return vaulterrors.New(vaulterrors.KindRoundNotYet, "round not yet produced")
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return vaulterrors.New(vaulterrors.KindNetworkUnavailable,
			fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, string(body)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return vaulterrors.Wrap(vaulterrors.KindNetworkUnavailable, err)
	}
	return nil
}
