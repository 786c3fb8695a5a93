// Package driver describes the supported web server kinds and controls their
// services.
//
// Each kind is a small descriptor rather than an implementation: the
// synchronizer and the renderer never branch on the server family, they ask
// the Kind for what differs.
//
// # Supported Web Servers
//
//   - Apache: `Include <path>`, tested with `apache2ctl -t`
//   - Nginx: `include <path>;`, tested with `nginx -t`
//
// # Kind Descriptors
//
//	k := driver.Apache
//	k.Markers()                 // # BEGIN AUTOGENERATED-apache / # END AUTOGENERATED-apache
//	k.IncludeDirective("/x.conf") // Include /x.conf
//	k.SnippetFileName()         // autogenerated-apache.conf
//
// # Service Control
//
// After files changed, the Controller tests the configuration and reloads the
// server through systemctl, falling back to the kind's own control program:
//
//	ctl := driver.NewServiceController(log)
//	if err := ctl.Test(driver.Nginx); err == nil {
//	    err = ctl.Reload(driver.Nginx, "nginx")
//	}
//
// # Testing
//
// NewServiceControllerWithExecutor accepts a mock executor.CommandExecutor for
// testing without actual system calls, and MockController stands in for the
// whole controller.
package driver
