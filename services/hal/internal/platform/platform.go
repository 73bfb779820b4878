package platform

import "modemhal-go/services/hal/internal/platform/setups"

// Public accessors used by hal.BoardConfig.
func Plan() setups.ResourcePlan { return setups.SelectedPlan }
func Setup() setups.RadioSetup  { return setups.SelectedSetup }
