package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dealdesk/dealdesk/internal/entities"
)

func TestInferCategory(t *testing.T) {
	tests := []struct {
		name       string
		tmplName   string
		folderHint string
		typeHint   string
		want       entities.TemplateCategory
	}{
		{"listing keyword in name", "New Listing Checklist", "", "", entities.CategoryListing},
		{"seller keyword in name", "Seller Onboarding", "", "", entities.CategoryListing},
		{"buyer keyword in name", "Buyer Side - FHA", "", "", entities.CategoryBuyer},
		{"purchase keyword in folder", "Standard", "Templates/Purchase", "", entities.CategoryBuyer},
		{"buyer type hint", "Standard Contract", "", "BUYER", entities.CategoryBuyer},
		{"seller type hint", "Standard Contract", "", "SELLER", entities.CategoryListing},
		{"listing type hint", "Standard Contract", "", "listing", entities.CategoryListing},
		{"keyword beats type hint", "Listing Wrap-up", "", "BUYER", entities.CategoryListing},
		{"nothing matches", "Closing Checklist", "Templates/Misc", "XACTION", entities.CategoryGeneral},
		{"empty input", "", "", "", entities.CategoryGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InferCategory(tt.tmplName, tt.folderHint, tt.typeHint)
			assert.Equal(t, tt.want, got)
		})
	}
}
