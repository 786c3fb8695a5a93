package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jturbide/vhost/internal/config"
	"github.com/jturbide/vhost/internal/driver"
	"github.com/jturbide/vhost/internal/generator"
	"github.com/jturbide/vhost/internal/hosts"
	"github.com/jturbide/vhost/internal/output"
	"github.com/jturbide/vhost/internal/platform"
	"github.com/jturbide/vhost/internal/ssl"
	"github.com/jturbide/vhost/internal/template"
)

// certWarnDays is how close to expiry a certificate gets flagged.
const certWarnDays = 30

// now is replaced in tests.
var now = time.Now

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the configuration and the system",
	Long: `Run diagnostic checks on the configuration and the system.

Checks:
  - Configuration file and platform section
  - Main server configs, templates and server binaries
  - Hosts files
  - Document roots and SSL certificates of every site

Examples:
  vhost doctor
  vhost doctor --json`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

// Check statuses
const (
	statusSuccess = "success"
	statusWarning = "warning"
	statusError   = "error"
)

// CheckResult represents a single diagnostic check result
type CheckResult struct {
	Status  string `json:"status"` // "success", "warning", "error"
	Message string `json:"message"`
}

// SiteStatus holds the checks of one site
type SiteStatus struct {
	Name   string        `json:"name"`
	Checks []CheckResult `json:"checks"`
}

// DoctorReport contains all diagnostic results
type DoctorReport struct {
	OS            string        `json:"os"`
	Runtime       string        `json:"runtime"`
	Configuration []CheckResult `json:"configuration"`
	Servers       []CheckResult `json:"servers"`
	Hosts         []CheckResult `json:"hosts"`
	Sites         []SiteStatus  `json:"sites"`
}

// Problems counts the error checks of the report.
func (r *DoctorReport) Problems() int {
	n := 0
	count := func(checks []CheckResult) {
		for _, c := range checks {
			if c.Status == statusError {
				n++
			}
		}
	}
	count(r.Configuration)
	count(r.Servers)
	count(r.Hosts)
	for _, s := range r.Sites {
		count(s.Checks)
	}
	return n
}

func runDoctor(cmd *cobra.Command, args []string) error {
	cfg, path, err := loadConfig()
	if err != nil {
		return err
	}
	osKey, err := selectOS(cfg)
	if err != nil {
		return err
	}

	report := &DoctorReport{OS: osKey, Runtime: platform.Platform()}
	report.Configuration = checkConfiguration(cfg, path, osKey)

	if p, err := cfg.Platform(osKey); err == nil {
		report.Servers = checkServers(deps.NewController(log), p, osKey)
		report.Hosts = checkHostsFiles(p)
		report.Sites = checkSites(cfg, p, osKey)
	}

	if jsonOutput {
		return output.JSON(report)
	}

	displayDoctorResults(report)
	return nil
}

func checkConfiguration(cfg *config.Config, path, osKey string) []CheckResult {
	results := []CheckResult{{
		Status:  statusSuccess,
		Message: fmt.Sprintf("Config file loaded (%s)", displayPath(path)),
	}}

	if _, err := cfg.Platform(osKey); err != nil {
		results = append(results, CheckResult{Status: statusError, Message: err.Error()})
		return results
	}
	results = append(results, CheckResult{
		Status:  statusSuccess,
		Message: fmt.Sprintf("Platform section %q found", osKey),
	})

	if len(cfg.Sites) == 0 {
		results = append(results, CheckResult{Status: statusWarning, Message: "No sites configured"})
	}
	return results
}

func checkServers(ctl driver.Controller, p *config.Platform, osKey string) []CheckResult {
	results := []CheckResult{}

	kinds := enabledKinds(p)
	if len(kinds) == 0 {
		return append(results, CheckResult{Status: statusWarning, Message: "No server kind is enabled"})
	}

	for _, kind := range kinds {
		srv := p.Server(kind.Name)
		name := output.Title(kind.Name)

		mainConfig := platform.NormalizePath(srv.Config, osKey)
		switch {
		case mainConfig == "":
			results = append(results, CheckResult{Status: statusError, Message: fmt.Sprintf("%s main config is not set", name)})
		case !fileExists(mainConfig):
			results = append(results, CheckResult{Status: statusError, Message: fmt.Sprintf("%s main config not found (%s)", name, mainConfig)})
		default:
			results = append(results, CheckResult{Status: statusSuccess, Message: fmt.Sprintf("%s main config exists (%s)", name, mainConfig)})
		}

		results = append(results, checkTemplate(kind, p, srv, osKey)...)

		if bin, err := ctl.Binary(kind); err != nil {
			results = append(results, CheckResult{Status: statusError, Message: fmt.Sprintf("%s not installed", name)})
		} else {
			results = append(results, CheckResult{Status: statusSuccess, Message: fmt.Sprintf("%s installed (%s)", name, bin)})
		}
	}
	return results
}

func checkTemplate(kind driver.Kind, p *config.Platform, srv *config.Server, osKey string) []CheckResult {
	name := output.Title(kind.Name)
	path := platform.NormalizePath(srv.Template, osKey)

	tmpl, err := template.Load(path, kind.Name)
	if err != nil {
		return []CheckResult{{Status: statusError, Message: fmt.Sprintf("%s template not readable (%s)", name, path)}}
	}

	source := "embedded default"
	if path != "" {
		source = path
	}
	results := []CheckResult{{Status: statusSuccess, Message: fmt.Sprintf("%s template readable (%s)", name, source)}}

	vars := generator.SiteVars(kind, p, srv, &config.Site{Name: "doctor"}, "", osKey)
	if unknown := template.Unknown(tmpl, vars); len(unknown) > 0 {
		results = append(results, CheckResult{
			Status:  statusWarning,
			Message: fmt.Sprintf("%s template uses unknown placeholders: %s", name, strings.Join(unknown, ", ")),
		})
	}
	return results
}

func checkHostsFiles(p *config.Platform) []CheckResult {
	if len(p.Hosts) == 0 {
		return []CheckResult{{Status: statusWarning, Message: "No hosts file configured"}}
	}

	results := []CheckResult{}
	for _, path := range p.Hosts {
		if fileExists(path) {
			results = append(results, CheckResult{Status: statusSuccess, Message: fmt.Sprintf("Hosts file exists (%s)", path)})
		} else {
			results = append(results, CheckResult{Status: statusWarning, Message: fmt.Sprintf("Hosts file not found, sync will create it (%s)", path)})
		}
	}
	return results
}

func checkSites(cfg *config.Config, p *config.Platform, osKey string) []SiteStatus {
	statuses := []SiteStatus{}

	for i, site := range cfg.Sites {
		if site == nil {
			continue
		}
		status := SiteStatus{Name: site.Name, Checks: []CheckResult{}}
		if status.Name == "" {
			status.Name = fmt.Sprintf("sites[%d]", i)
		}

		if err := site.Validate(); err != nil {
			status.Checks = append(status.Checks, CheckResult{Status: statusError, Message: err.Error()})
			statuses = append(statuses, status)
			continue
		}

		root := generator.DocumentRoot(p, site, osKey)
		if fileExists(root) {
			status.Checks = append(status.Checks, CheckResult{Status: statusSuccess, Message: fmt.Sprintf("document root exists (%s)", root)})
		} else {
			status.Checks = append(status.Checks, CheckResult{Status: statusWarning, Message: fmt.Sprintf("document root missing, vhost will be skipped (%s)", root)})
		}

		if _, err := hosts.ResolveIP(cfg, site); err != nil {
			status.Checks = append(status.Checks, CheckResult{Status: statusWarning, Message: err.Error()})
		}

		status.Checks = append(status.Checks, checkCertificate(site, p.CertFor(site))...)
		statuses = append(statuses, status)
	}
	return statuses
}

func checkCertificate(site *config.Site, cert config.SSL) []CheckResult {
	if cert.IsZero() {
		return nil
	}

	info, err := ssl.Inspect(cert.Cert, cert.Key)
	if err != nil {
		return []CheckResult{{Status: statusError, Message: err.Error()}}
	}

	t := now()
	results := []CheckResult{}
	switch {
	case info.Expired(t):
		results = append(results, CheckResult{Status: statusError, Message: fmt.Sprintf("certificate expired on %s", info.NotAfter.Format("2006-01-02"))})
	case info.ExpiresWithin(certWarnDays*24*time.Hour, t):
		results = append(results, CheckResult{Status: statusWarning, Message: fmt.Sprintf("certificate expires in %d days", info.DaysLeft(t))})
	default:
		results = append(results, CheckResult{Status: statusSuccess, Message: fmt.Sprintf("certificate valid until %s", info.NotAfter.Format("2006-01-02"))})
	}

	if missing := info.Uncovered(site.Hostnames()); len(missing) > 0 {
		results = append(results, CheckResult{
			Status:  statusWarning,
			Message: fmt.Sprintf("certificate does not cover %s", strings.Join(missing, ", ")),
		})
	}
	return results
}

func displayDoctorResults(report *DoctorReport) {
	output.Print("Platform: %s (running on %s)", report.OS, report.Runtime)
	output.Print("")
	output.Heading("configuration")
	for _, check := range report.Configuration {
		displayCheck(check)
	}
	output.Print("")

	if len(report.Servers) > 0 {
		output.Heading("server kinds")
		for _, check := range report.Servers {
			displayCheck(check)
		}
		output.Print("")
	}

	if len(report.Hosts) > 0 {
		output.Heading("hosts files")
		for _, check := range report.Hosts {
			displayCheck(check)
		}
		output.Print("")
	}

	if len(report.Sites) > 0 {
		output.Heading("sites")
		for _, site := range report.Sites {
			for _, check := range site.Checks {
				displayCheck(CheckResult{Status: check.Status, Message: site.Name + " - " + check.Message})
			}
		}
		output.Print("")
	}

	if n := report.Problems(); n > 0 {
		output.Error("%d problem(s) found", n)
	} else {
		output.Success("No problems found")
	}
}

func displayCheck(check CheckResult) {
	switch check.Status {
	case statusSuccess:
		output.Success("%s", check.Message)
	case statusWarning:
		output.Warn("%s", check.Message)
	case statusError:
		output.Error("%s", check.Message)
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// displayPath shortens the home directory to ~
func displayPath(path string) string {
	if home, err := os.UserHomeDir(); err == nil && home != "" && strings.HasPrefix(path, home) {
		return "~" + strings.TrimPrefix(path, home)
	}
	return path
}
