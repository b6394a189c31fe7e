package openai

import (
	"context"
	"encoding/json"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/kailas-cloud/domek/internal/domain"
	"github.com/kailas-cloud/domek/internal/domain/criteria"
)

// Extractor turns a free-text query into a criteria record via the
// OpenAI-compatible chat API with function calling. The model is forced
// through a fixed schema in which every field is nullable: null means the
// query did not state the field. When the model declines to call the
// function or returns undecodable arguments, the caller falls back to the
// deterministic rules extractor.
type Extractor struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// ExtractorConfig holds the extraction model settings.
type ExtractorConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Logger  *zap.Logger
}

// NewExtractor creates a function-calling criteria extractor.
func NewExtractor(cfg *ExtractorConfig) *Extractor {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &Extractor{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
		logger: cfg.Logger,
	}
}

// extractFunctionName is the fixed capability the model is asked to call.
const extractFunctionName = "extract_search_criteria"

// Extract invokes the extraction capability. Returns
// domain.ErrNoStructuredOutput when no structured criteria were produced.
func (e *Extractor) Extract(ctx context.Context, query string) (criteria.Criteria, error) {
	req := openai.ChatCompletionRequest{
		Model: e.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: query},
		},
		Tools: []openai.Tool{{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name: extractFunctionName,
				Description: "Extracts apartment search criteria from the user's message. " +
					"Always return every key; set a key to null when the message does not state it. " +
					"Pay attention to whether the user wants to buy or to rent; " +
					"return null for transaction_type when neither is stated.",
				Parameters: json.RawMessage(criteriaSchema),
			},
		}},
	}

	resp, err := e.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return criteria.Criteria{}, fmt.Errorf("extraction request: %w", err)
	}
	if len(resp.Choices) == 0 {
		return criteria.Criteria{}, domain.ErrNoStructuredOutput
	}

	args := functionArguments(resp.Choices[0].Message)
	if args == "" {
		return criteria.Criteria{}, domain.ErrNoStructuredOutput
	}

	var dto criteriaDTO
	if err := json.Unmarshal([]byte(args), &dto); err != nil {
		e.logger.Warn("Undecodable function-call arguments",
			zap.String("model", e.model), zap.Error(err))
		return criteria.Criteria{}, domain.ErrNoStructuredOutput
	}

	return dto.toCriteria(), nil
}

// functionArguments pulls the criteria arguments from either the tool-call
// or the legacy function-call shape of the response.
func functionArguments(msg openai.ChatCompletionMessage) string {
	for _, tc := range msg.ToolCalls {
		if tc.Function.Name == extractFunctionName {
			return tc.Function.Arguments
		}
	}
	if msg.FunctionCall != nil && msg.FunctionCall.Name == extractFunctionName {
		return msg.FunctionCall.Arguments
	}
	return ""
}

// criteriaDTO mirrors the function schema; pointer fields preserve the
// null-means-unspecified contract.
type criteriaDTO struct {
	Province           *string  `json:"province"`
	City               *string  `json:"city"`
	District           *string  `json:"district"`
	Districts          []string `json:"districts"`
	Neighbourhood      *string  `json:"neighbourhood"`
	Street             *string  `json:"street"`
	HouseNumber        *int     `json:"house_number"`
	RoomCount          *int     `json:"room_count"`
	Area               *float64 `json:"area"`
	Floor              *int     `json:"floor"`
	MinPrice           *int     `json:"min_price"`
	MaxPrice           *int     `json:"max_price"`
	TransactionType    *string  `json:"transaction_type"`
	MarketType         *string  `json:"market_type"`
	FinishState        *string  `json:"finish_state"`
	MinBuildYear       *int     `json:"min_build_year"`
	MaxBuildYear       *int     `json:"max_build_year"`
	BuildingMaterial   *string  `json:"building_material"`
	BuildingType       *string  `json:"building_type"`
	Heating            *string  `json:"heating"`
	MaxRentFee         *int     `json:"max_rent_fee"`
	HasGarage          *bool    `json:"has_garage"`
	HasParking         *bool    `json:"has_parking"`
	HasBalcony         *bool    `json:"has_balcony"`
	HasElevator        *bool    `json:"has_elevator"`
	HasAirConditioning *bool    `json:"has_air_conditioning"`
	PetsAllowed        *bool    `json:"pets_allowed"`
	Furnished          *bool    `json:"furnished"`
}

func (d *criteriaDTO) toCriteria() criteria.Criteria {
	c := criteria.Criteria{
		Province:           d.Province,
		City:               d.City,
		District:           d.District,
		Districts:          d.Districts,
		Neighbourhood:      d.Neighbourhood,
		Street:             d.Street,
		HouseNumber:        d.HouseNumber,
		RoomCount:          d.RoomCount,
		MinArea:            d.Area,
		Floor:              d.Floor,
		MinPrice:           d.MinPrice,
		MaxPrice:           d.MaxPrice,
		MaxRentFee:         d.MaxRentFee,
		MinBuildYear:       d.MinBuildYear,
		MaxBuildYear:       d.MaxBuildYear,
		MarketType:         d.MarketType,
		FinishState:        d.FinishState,
		BuildingMaterial:   d.BuildingMaterial,
		BuildingType:       d.BuildingType,
		Heating:            d.Heating,
		HasGarage:          d.HasGarage,
		HasParking:         d.HasParking,
		HasBalcony:         d.HasBalcony,
		HasElevator:        d.HasElevator,
		HasAirConditioning: d.HasAirConditioning,
		PetsAllowed:        d.PetsAllowed,
		Furnished:          d.Furnished,
	}
	if d.TransactionType != nil {
		switch *d.TransactionType {
		case "rent":
			c.Transaction = criteria.TransactionRent
		case "sale":
			c.Transaction = criteria.TransactionSale
		}
	}
	c.Normalize()
	return c
}

// criteriaSchema enumerates every criteria field with explicit
// null-means-unspecified semantics. The per-field rules (district list for
// "or"-joined districts, floor 0 = parter, no guessing floors from phrases
// like "high floor") are part of the extraction contract.
const criteriaSchema = `{
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "province": {
      "type": ["string", "null"],
      "description": "Province (wojewodztwo) in Polish, e.g. 'pomorskie'. Null if not stated."
    },
    "city": {
      "type": ["string", "null"],
      "description": "City, e.g. 'Warszawa'. Null if not stated."
    },
    "district": {
      "type": ["string", "null"],
      "description": "District or estate, e.g. 'Mokotow'. If the user names several districts (e.g. 'Bemowo or Mokotow'), return the first one named. Null if not stated."
    },
    "districts": {
      "type": ["array", "null"],
      "items": {"type": "string"},
      "description": "List of districts when the user names several (e.g. ['Bemowo', 'Mokotow'] for 'Bemowo or Mokotow'). Null when only one district or none is stated."
    },
    "neighbourhood": {
      "type": ["string", "null"],
      "description": "Smaller estate inside a district, e.g. 'Wrzeszcz Dolny' inside Wrzeszcz. Null if not stated."
    },
    "street": {
      "type": ["string", "null"],
      "description": "Street, e.g. 'Grunwaldzka'. Null if not stated."
    },
    "house_number": {
      "type": ["integer", "null"],
      "description": "House number as an integer. Null if not stated."
    },
    "room_count": {
      "type": ["integer", "null"],
      "description": "Room count as an integer, e.g. 2. Null if not stated."
    },
    "area": {
      "type": ["number", "null"],
      "description": "Area in square metres, e.g. 45.0. Null if not stated."
    },
    "floor": {
      "type": ["integer", "null"],
      "description": "Floor: 0 = parter (ground floor), 1, 2, ... Null if not stated. Do not interpret vague phrases like 'high floor' or 'at the top' as a floor number; those are for semantic search."
    },
    "min_price": {
      "type": ["integer", "null"],
      "description": "Minimum price in PLN (without the currency suffix). Null if not stated."
    },
    "max_price": {
      "type": ["integer", "null"],
      "description": "Maximum price in PLN (without the currency suffix), e.g. 3000. Null if not stated."
    },
    "transaction_type": {
      "type": ["string", "null"],
      "enum": ["rent", "sale", null],
      "description": "Transaction type: 'rent' (wynajem) or 'sale' (kupno/sprzedaz). Null when neither is stated."
    },
    "market_type": {
      "type": ["string", "null"],
      "enum": ["PRIMARY", "SECONDARY", null],
      "description": "Market type: 'PRIMARY' (rynek pierwotny) or 'SECONDARY' (rynek wtorny). Null if not stated."
    },
    "finish_state": {
      "type": ["string", "null"],
      "enum": ["to_completion", "ready_to_use", null],
      "description": "Finish state: 'to_completion' (do wykonczenia) or 'ready_to_use' (gotowe do uzytku). Null if not stated."
    },
    "min_build_year": {
      "type": ["integer", "null"],
      "description": "Minimum build year ('not older than X' means min_build_year X), e.g. 2008. Null if not stated."
    },
    "max_build_year": {
      "type": ["integer", "null"],
      "description": "Maximum build year ('not newer than X' means max_build_year X), e.g. 2020. Null if not stated."
    },
    "building_material": {
      "type": ["string", "null"],
      "enum": ["breezeblock", "brick", "concrete_plate", "silikat", "reinforced_concrete", "wood", null],
      "description": "Building material. Null if not stated."
    },
    "building_type": {
      "type": ["string", "null"],
      "enum": ["block", "apartment", "tenement", "infill", null],
      "description": "Building type. Null if not stated."
    },
    "heating": {
      "type": ["string", "null"],
      "enum": ["urban", "gas", "electrical", "boiler_room", null],
      "description": "Heating type. Null if not stated."
    },
    "max_rent_fee": {
      "type": ["integer", "null"],
      "description": "Maximum monthly czynsz in PLN (rentals only), e.g. 500. Null if not stated."
    },
    "has_garage": {
      "type": ["boolean", "null"],
      "description": "True when the user mentions 'garaz', 'garage', 'miejsce w garazu'; false when they explicitly exclude it. Null if not stated."
    },
    "has_parking": {
      "type": ["boolean", "null"],
      "description": "True when the user mentions 'parking', 'miejsce parkingowe', 'parking podziemny'; false when they explicitly exclude it. Null if not stated."
    },
    "has_balcony": {
      "type": ["boolean", "null"],
      "description": "True when the user mentions 'balkon', 'loggia', 'taras'; false when they explicitly exclude it. Null if not stated."
    },
    "has_elevator": {
      "type": ["boolean", "null"],
      "description": "True when the user mentions 'winda', 'elevator'; false when they explicitly exclude it. Null if not stated."
    },
    "has_air_conditioning": {
      "type": ["boolean", "null"],
      "description": "True when the user mentions 'klimatyzacja', 'air conditioning', 'klima'; false when they explicitly exclude it. Null if not stated."
    },
    "pets_allowed": {
      "type": ["boolean", "null"],
      "description": "True when the user mentions 'zwierzeta', 'pets', 'psy', 'koty'; false when they explicitly exclude them. Null if not stated."
    },
    "furnished": {
      "type": ["boolean", "null"],
      "description": "True when the user mentions 'umeblowane', 'furnished', 'z meblami'; false when they explicitly exclude it. Null if not stated."
    }
  }
}`
