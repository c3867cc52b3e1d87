package opts

import (
	"github.com/walteh/metadate/pkg/config"
	"github.com/walteh/metadate/pkg/plan"
	"github.com/walteh/metadate/pkg/status"
	"github.com/walteh/metadate/pkg/userlog"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	Config     *config.Config
	Planner    *plan.Planner
	StatusMgr  *status.Manager
	UserLogger *userlog.UserLogger
}
