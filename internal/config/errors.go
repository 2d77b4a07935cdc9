// SPDX-License-Identifier: Apache-2.0

package config

import (
	"github.com/joomcode/errorx"
	"github.com/platformops/bootprune/internal/core"
)

var (
	// NotFoundError indicates the configuration file is missing or unreadable.
	NotFoundError = core.ErrNamespace.NewType("config_not_found", errorx.NotFound())
)
