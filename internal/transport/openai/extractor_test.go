package openai

import (
	"encoding/json"
	"testing"

	openai "github.com/sashabaranov/go-openai"

	"github.com/kailas-cloud/domek/internal/domain/criteria"
)

func TestFunctionArgumentsToolCall(t *testing.T) {
	msg := openai.ChatCompletionMessage{
		ToolCalls: []openai.ToolCall{{
			Type: openai.ToolTypeFunction,
			Function: openai.FunctionCall{
				Name:      extractFunctionName,
				Arguments: `{"city":"Warszawa"}`,
			},
		}},
	}

	if got := functionArguments(msg); got != `{"city":"Warszawa"}` {
		t.Errorf("arguments = %q", got)
	}
}

func TestFunctionArgumentsLegacyShape(t *testing.T) {
	msg := openai.ChatCompletionMessage{
		FunctionCall: &openai.FunctionCall{
			Name:      extractFunctionName,
			Arguments: `{"room_count":2}`,
		},
	}

	if got := functionArguments(msg); got != `{"room_count":2}` {
		t.Errorf("arguments = %q", got)
	}
}

func TestFunctionArgumentsIgnoresOtherCalls(t *testing.T) {
	msg := openai.ChatCompletionMessage{
		Content: "I cannot help with that.",
		ToolCalls: []openai.ToolCall{{
			Type:     openai.ToolTypeFunction,
			Function: openai.FunctionCall{Name: "some_other_tool", Arguments: `{}`},
		}},
	}

	if got := functionArguments(msg); got != "" {
		t.Errorf("arguments = %q, want empty", got)
	}
	if got := functionArguments(openai.ChatCompletionMessage{Content: "plain text"}); got != "" {
		t.Errorf("arguments = %q, want empty for a plain message", got)
	}
}

func TestToCriteriaMapsFields(t *testing.T) {
	args := `{
		"city": "Warszawa",
		"district": "Mokotów",
		"room_count": 2,
		"area": 45.5,
		"floor": 0,
		"max_price": 3000,
		"transaction_type": "rent",
		"market_type": "SECONDARY",
		"max_rent_fee": 500,
		"has_balcony": true,
		"furnished": false,
		"pets_allowed": null
	}`

	var dto criteriaDTO
	if err := json.Unmarshal([]byte(args), &dto); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	c := dto.toCriteria()

	if c.City == nil || *c.City != "Warszawa" {
		t.Errorf("city = %v", c.City)
	}
	if c.District == nil || *c.District != "Mokotów" {
		t.Errorf("district = %v", c.District)
	}
	if c.RoomCount == nil || *c.RoomCount != 2 {
		t.Errorf("room_count = %v", c.RoomCount)
	}
	if c.MinArea == nil || *c.MinArea != 45.5 {
		t.Errorf("min_area = %v", c.MinArea)
	}
	if c.Floor == nil || *c.Floor != 0 {
		t.Errorf("floor = %v, want explicit 0", c.Floor)
	}
	if c.MaxPrice == nil || *c.MaxPrice != 3000 {
		t.Errorf("max_price = %v", c.MaxPrice)
	}
	if c.Transaction != criteria.TransactionRent {
		t.Errorf("transaction = %q", c.Transaction)
	}
	if c.MaxRentFee == nil || *c.MaxRentFee != 500 {
		t.Errorf("max_rent_fee = %v", c.MaxRentFee)
	}
	if c.HasBalcony == nil || !*c.HasBalcony {
		t.Errorf("has_balcony = %v", c.HasBalcony)
	}
	if c.Furnished == nil || *c.Furnished {
		t.Errorf("furnished = %v, want explicit false", c.Furnished)
	}
	if c.PetsAllowed != nil {
		t.Errorf("pets_allowed = %v, want unspecified", c.PetsAllowed)
	}
}

func TestToCriteriaTransaction(t *testing.T) {
	tests := []struct {
		raw  string
		want criteria.Transaction
	}{
		{`{"transaction_type":"rent"}`, criteria.TransactionRent},
		{`{"transaction_type":"sale"}`, criteria.TransactionSale},
		{`{"transaction_type":null}`, criteria.TransactionUnspecified},
		{`{"transaction_type":"lease"}`, criteria.TransactionUnspecified},
		{`{}`, criteria.TransactionUnspecified},
	}

	for _, tt := range tests {
		var dto criteriaDTO
		if err := json.Unmarshal([]byte(tt.raw), &dto); err != nil {
			t.Fatalf("unmarshal %s: %v", tt.raw, err)
		}
		if got := dto.toCriteria().Transaction; got != tt.want {
			t.Errorf("%s: transaction = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestToCriteriaNormalizesDistricts(t *testing.T) {
	var dto criteriaDTO
	raw := `{"districts":["Bemowo","Mokotów"]}`
	if err := json.Unmarshal([]byte(raw), &dto); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	c := dto.toCriteria()
	if c.District == nil || *c.District != "Bemowo" {
		t.Errorf("district = %v, want first of the list", c.District)
	}
	if len(c.Districts) != 2 {
		t.Errorf("districts = %v", c.Districts)
	}
}

func TestToCriteriaSingleDistrictList(t *testing.T) {
	var dto criteriaDTO
	if err := json.Unmarshal([]byte(`{"districts":["Wola"]}`), &dto); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	c := dto.toCriteria()
	if c.District == nil || *c.District != "Wola" {
		t.Errorf("district = %v, want collapsed single entry", c.District)
	}
	if c.Districts != nil {
		t.Errorf("districts = %v, want nil after normalization", c.Districts)
	}
}

func TestCriteriaSchemaIsValidJSON(t *testing.T) {
	var schema map[string]any
	if err := json.Unmarshal([]byte(criteriaSchema), &schema); err != nil {
		t.Fatalf("schema does not parse: %v", err)
	}

	props, ok := schema["properties"].(map[string]any)
	if !ok {
		t.Fatal("schema has no properties object")
	}

	// Every DTO field must be declared in the schema, or the model could
	// never populate it.
	var dto criteriaDTO
	data, _ := json.Marshal(dto)
	var keys map[string]any
	if err := json.Unmarshal(data, &keys); err != nil {
		t.Fatalf("dto marshal: %v", err)
	}
	for k := range keys {
		if _, ok := props[k]; !ok {
			t.Errorf("dto field %q missing from the schema", k)
		}
	}
}
