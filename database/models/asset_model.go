package models

import (
	"time"

	"gorm.io/datatypes"
)

// Asset is the mirror representation of a part. The owning organization is written once
// on first storage and never changed afterwards.
type Asset struct {
	SerialNumberCustomer              string            `json:"serialNumberCustomer" gorm:"primaryKey;type:text;column:serial_number_customer"`
	SerialNumberManufacturer          string            `json:"serialNumberManufacturer" gorm:"type:text;"`
	SerialNumberType                  string            `json:"serialNumberType" gorm:"type:text;not null;"`
	Manufacturer                      string            `json:"manufacturer" gorm:"type:text;not null;index:manufacturer_index"`
	ManufacturerPlant                 string            `json:"manufacturerPlant" gorm:"type:text;"`
	ManufacturerLine                  string            `json:"manufacturerLine" gorm:"type:text;"`
	PartNameManufacturer              string            `json:"partNameManufacturer" gorm:"type:text;index:part_name_manufacturer_index"`
	PartNumberCustomer                string            `json:"partNumberCustomer" gorm:"type:text;"`
	PartNumberManufacturer            string            `json:"partNumberManufacturer" gorm:"type:text;"`
	ProductionCountryCodeManufacturer string            `json:"productionCountryCodeManufacturer" gorm:"type:text;index:production_country_code_manufacturer_index"`
	ProductionDateGmt                 time.Time         `json:"productionDateGmt" gorm:"not null;index:production_date_gmt_index"`
	QualityDocuments                  datatypes.JSONMap `json:"qualityDocuments"`
	QualityStatus                     string            `json:"qualityStatus" gorm:"type:text;not null;index:quality_status_index"`
	Status                            string            `json:"status" gorm:"type:text;"`
	CustomFields                      datatypes.JSONMap `json:"customFields"`
	MspID                             string            `json:"mspid" gorm:"column:mspid;type:text;index:mspid_index"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (m Asset) TableName() string {
	return "assets"
}
