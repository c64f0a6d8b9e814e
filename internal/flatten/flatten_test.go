package flatten

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sokinpui/nbanswer/model"
)

func TestText(t *testing.T) {
	doc := model.Document{Units: []model.ContentUnit{
		{Kind: model.KindText, Raw: "  # Task One  \n"},
		{Kind: model.KindCode, Raw: "   "},
		{Kind: model.KindCode, Raw: "x = 1\n"},
		{Kind: model.KindText, Raw: ""},
		{Kind: model.KindText, Raw: "Keep Case"},
	}}

	assert.Equal(t, "# Task One\nx = 1\nKeep Case", Text(doc))
}

func TestTextEmpty(t *testing.T) {
	assert.Equal(t, "", Text(model.Document{}))
}

func TestUnitTexts(t *testing.T) {
	doc := model.Document{Units: []model.ContentUnit{
		{Kind: model.KindText, Raw: " a "},
		{Kind: model.KindCode, Raw: ""},
		{Kind: model.KindCode, Raw: "b\n"},
	}}

	assert.Equal(t, []string{"a", "", "b"}, UnitTexts(doc))
}
