// internal/optimizer/validation.go
package optimizer

import (
	"route-optimizer/internal/common/errors"
	"route-optimizer/internal/models"
)

// ValidateRequest checks coordinates and option tokens before any
// computation. Validation failure is the only hard failure of an
// optimization request.
func ValidateRequest(req models.OptimizationRequest) error {
	if err := validateCoordinate("pickup", req.Pickup); err != nil {
		return err
	}
	if err := validateCoordinate("delivery", req.Delivery); err != nil {
		return err
	}
	return validateOptions(req.Options)
}

func validateCoordinate(side string, c *models.Coordinate) error {
	if c == nil {
		return errors.NewMissingCoordinateError(side)
	}
	if c.Latitude < -90 || c.Latitude > 90 {
		return errors.NewInvalidCoordinateError(side, "latitude", c.Latitude)
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return errors.NewInvalidCoordinateError(side, "longitude", c.Longitude)
	}
	return nil
}

func validateOptions(opts models.RouteOptions) error {
	switch opts.FuelType {
	case "", models.FuelStandard, models.FuelHybrid, models.FuelElectric:
	default:
		return errors.NewInvalidRequestError("unknown fuelType: " + opts.FuelType)
	}

	switch opts.VehicleType {
	case "", models.VehicleLight, models.VehicleMedium, models.VehicleHeavy:
	default:
		return errors.NewInvalidRequestError("unknown vehicleType: " + opts.VehicleType)
	}

	return nil
}

// resolveOptions fills derived fields: the fuel default and the
// weight-derived vehicle category (an explicit VehicleType overrides it).
func resolveOptions(opts models.RouteOptions) (fuelType, category string) {
	fuelType = opts.FuelType
	if fuelType == "" {
		fuelType = models.FuelStandard
	}

	category = opts.VehicleType
	if category == "" {
		category = GetVehicleCategory(opts.CargoWeightKg)
	}

	return fuelType, category
}
