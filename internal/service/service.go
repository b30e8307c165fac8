package service

import (
	"uptown/internal/service/cloudinary"

	"github.com/google/wire"
)

// Wire 依賴提供
var ProviderSet = wire.NewSet(
	NewAuthService,
	NewPropertyService,
	NewStateService,
	NewCityService,
	NewMicrolocationService,
	NewAmenityService,
	NewColivingPlanService,
	NewLeadService,
	NewMediaService,
	NewHealthService,
	cloudinary.NewCloudinaryService,
)
