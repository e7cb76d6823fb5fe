package nutrition

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
	"github.com/trackme/trackme/internal/common/httpclient"
)

// DefaultAPIURL is the Nutritionix v1.1 API.
const DefaultAPIURL = "https://api.nutritionix.com/v1_1"

// RemoteConfig configures a RemoteEstimator. AppID defaults to APIKey.
type RemoteConfig struct {
	AppID  string
	APIKey string
	APIURL string
}

func (c RemoteConfig) GetServerURL() string {
	if c.APIURL == "" {
		return DefaultAPIURL
	}
	return c.APIURL
}

// GetToken returns no token; the API authenticates with its own headers.
func (c RemoteConfig) GetToken() string {
	return ""
}

// RemoteEstimator queries the natural language nutrients endpoint. Any
// failure falls back to the built-in estimates.
type RemoteEstimator struct {
	config RemoteConfig
	client httpclient.Requester
}

var _ Estimator = (*RemoteEstimator)(nil)

// NewRemoteEstimator returns an estimator using cfg. A nil client selects
// a default HTTP client.
func NewRemoteEstimator(cfg RemoteConfig, client httpclient.Requester) *RemoteEstimator {
	if client == nil {
		client = httpclient.NewClient(cfg)
	}
	return &RemoteEstimator{config: cfg, client: client}
}

// New returns a RemoteEstimator when an API key is configured and a
// MockEstimator otherwise.
func New(cfg RemoteConfig) Estimator {
	if cfg.APIKey == "" {
		return MockEstimator{}
	}
	return NewRemoteEstimator(cfg, nil)
}

func (e *RemoteEstimator) Estimate(ctx context.Context, foodName, quantity string) (Info, error) {
	query := strings.TrimSpace(quantity + " " + foodName)
	appID := e.config.AppID
	if appID == "" {
		appID = e.config.APIKey
	}
	body, err := e.client.DoRequest(ctx, httpclient.RequestOptions{
		Method: http.MethodPost,
		Path:   "/natural/nutrients",
		Body:   map[string]string{"query": query},
		Headers: map[string]string{
			"x-app-id":  appID,
			"x-app-key": e.config.APIKey,
		},
		NoAuth: true,
	})
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("food_name", foodName).Msg("nutrition lookup failed, using estimates")
		return estimate(foodName, quantity), nil
	}
	return parseNutrients(body), nil
}

// parseNutrients reads the first food of a nutrients response. A response
// without foods yields the estimate for an unknown food.
func parseNutrients(body []byte) Info {
	food := gjson.GetBytes(body, "foods.0")
	if !food.Exists() || !food.IsObject() {
		return estimate("unknown", "")
	}
	return Info{
		Calories: food.Get("nf_calories").Float(),
		Carbs:    food.Get("nf_total_carbohydrate").Float(),
		Protein:  food.Get("nf_protein").Float(),
		Fat:      food.Get("nf_total_fat").Float(),
		Raw:      json.RawMessage(body),
	}
}
