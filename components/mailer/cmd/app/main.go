// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	libCommons "github.com/LerianStudio/lib-commons/v3/commons"

	"github.com/docstackhq/docstack/components/mailer/internal/bootstrap"
)

// @title			Docstack Mailer
// @version		1.0.0
// @description	Outbound message composition and queueing service
// @host			localhost:4012
// @BasePath		/
func main() {
	libCommons.InitLocalEnvConfig()

	svc, err := bootstrap.InitServers()
	if err != nil {
		// fmt.Fprintf is used here because the structured logger (zap) is not
		// yet available; it is initialized inside InitServers.
		fmt.Fprintf(os.Stderr, "Failed to initialize mailer: %v\n", err)
		os.Exit(1)
	}

	svc.Run()
}
