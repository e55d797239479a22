package services

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/l3montree-dev/partchain/dtos"
	"github.com/l3montree-dev/partchain/shared"
	"github.com/l3montree-dev/partchain/transformer"
	"github.com/l3montree-dev/partchain/utils"
	"github.com/pkg/errors"
)

const maxAssetsPerRequest = 100

// ValidateAssetList checks the assets of a single request and normalizes them.
// All problems are reported at once in a BadRequestError.
func ValidateAssetList(assets []dtos.Asset) ([]dtos.Asset, error) {
	if len(assets) > maxAssetsPerRequest {
		return nil, shared.NewBadRequestError("You cannot send more than %d assets at once!", maxAssetsPerRequest)
	}

	var problems []string
	normalized := make([]dtos.Asset, len(assets))
	for i, asset := range assets {
		asset, assetProblems := normalizeAsset(asset)
		problems = append(problems, assetProblems...)
		normalized[i] = asset
	}

	if len(problems) > 0 {
		return nil, shared.BadRequestError{Msg: strings.Join(problems, ",")}
	}
	return normalized, nil
}

func normalizeAsset(asset dtos.Asset) (dtos.Asset, []string) {
	var problems []string

	if err := shared.V.Struct(asset); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return asset, []string{err.Error()}
		}
		for _, fe := range validationErrors {
			problems = append(problems, validationMessage(fe))
		}
	}

	if asset.ProductionDateGmt != "" {
		productionDate, err := transformer.ParseProductionDate(asset.ProductionDateGmt)
		if err != nil {
			problems = append(problems, err.Error())
		} else {
			asset.ProductionDateGmt = productionDate.Format(transformer.ProductionDateLayout)
		}
	}

	if utils.Contains(asset.ComponentsSerialNumbers, asset.SerialNumberCustomer) || utils.Contains(asset.ComponentsSerialNumbers, asset.SerialNumberManufacturer) {
		problems = append(problems, fmt.Sprintf("serialNumberManufacturer or serialNumberCustomer is in componentSerialNumbers [%s], which is not allowed!", strings.Join(asset.ComponentsSerialNumbers, ",")))
	}
	asset.ComponentsSerialNumbers = utils.CompactUnique(asset.ComponentsSerialNumbers)

	if asset.QualityDocuments == nil {
		asset.QualityDocuments = map[string]any{}
	}
	if asset.CustomFields == nil {
		asset.CustomFields = map[string]any{}
	}
	return asset, problems
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s has to be present and not be an empty string!", fe.Field())
	case "oneof":
		return fmt.Sprintf("Only allowed values for %s are %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "iso3166_1_alpha2":
		return fmt.Sprintf("%s is not a valid ISO 3166-1 alpha-2 code", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
