package domain

import "strings"

// ModelCode is the bounded set of forecast sources the ensemble tracks.
// Techniques outside the set collapse to ModelOther.
type ModelCode string

const (
	ModelOFCL  ModelCode = "OFCL"
	ModelJTWC  ModelCode = "JTWC"
	ModelECMWF ModelCode = "ECMWF"
	ModelGFS   ModelCode = "GFS"
	ModelHWRF  ModelCode = "HWRF"
	ModelUKMET ModelCode = "UKMET"
	ModelCMC   ModelCode = "CMC"
	ModelNVGM  ModelCode = "NVGM"
	ModelOther ModelCode = "OTHER"
)

// techniqueAliases maps ATCF technique codes onto the known models.
var techniqueAliases = map[string]ModelCode{
	"OFCL":  ModelOFCL,
	"JTWC":  ModelJTWC,
	"ECMWF": ModelECMWF,
	"ECMF":  ModelECMWF,
	"EMX":   ModelECMWF,
	"GFS":   ModelGFS,
	"AVNO":  ModelGFS,
	"HWRF":  ModelHWRF,
	"UKMET": ModelUKMET,
	"UKM":   ModelUKMET,
	"EGRR":  ModelUKMET,
	"CMC":   ModelCMC,
	"NVGM":  ModelNVGM,
}

// ParseModelCode maps a technique field to a model code.
func ParseModelCode(technique string) ModelCode {
	if m, ok := techniqueAliases[strings.ToUpper(strings.TrimSpace(technique))]; ok {
		return m
	}
	return ModelOther
}

// ModelMetadata describes a forecast source for display.
type ModelMetadata struct {
	Code   ModelCode `json:"code"`
	Name   string    `json:"name"`
	Agency string    `json:"agency"`
	Color  string    `json:"color"`
}

var modelMetadata = []ModelMetadata{
	{Code: ModelOFCL, Name: "Official Forecast", Agency: "PAGASA", Color: "#e11d48"},
	{Code: ModelJTWC, Name: "Joint Typhoon Warning Center", Agency: "US Navy/Air Force", Color: "#2563eb"},
	{Code: ModelECMWF, Name: "European Centre Model", Agency: "ECMWF", Color: "#16a34a"},
	{Code: ModelGFS, Name: "Global Forecast System", Agency: "NOAA", Color: "#f59e0b"},
	{Code: ModelHWRF, Name: "Hurricane Weather Research and Forecasting", Agency: "NOAA", Color: "#9333ea"},
	{Code: ModelUKMET, Name: "UK Met Office Model", Agency: "UK Met Office", Color: "#0891b2"},
	{Code: ModelCMC, Name: "Canadian Meteorological Centre", Agency: "Environment Canada", Color: "#dc2626"},
	{Code: ModelNVGM, Name: "Navy Global Environmental Model", Agency: "US Navy", Color: "#64748b"},
	{Code: ModelOther, Name: "Other Guidance", Agency: "Various", Color: "#a3a3a3"},
}

// ForecastModels returns the static model lookup table.
func ForecastModels() []ModelMetadata {
	out := make([]ModelMetadata, len(modelMetadata))
	copy(out, modelMetadata)
	return out
}
