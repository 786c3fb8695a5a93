package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jturbide/vhost/internal/driver"
	"github.com/jturbide/vhost/internal/generator"
	"github.com/jturbide/vhost/internal/hosts"
	"github.com/jturbide/vhost/internal/output"
	"github.com/jturbide/vhost/internal/ssl"
)

var showKind string

var showCmd = &cobra.Command{
	Use:   "show <site>",
	Short: "Show a site and its rendered vhost files",
	Long: `Show the settings of a site and the vhost file that 'vhost sync' would
write for it, for every enabled server kind. Nothing is written.

Examples:
  vhost show example.test
  vhost show example.test --kind nginx
  vhost show example.test --json`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().StringVar(&showKind, "kind", "", "Only render for this server kind ("+strings.Join(driver.Names(), ", ")+")")
	rootCmd.AddCommand(showCmd)
}

// showDetail represents the detailed site information for output
type showDetail struct {
	Name       string              `json:"name"`
	Root       string              `json:"root"`
	Aliases    []string            `json:"aliases,omitempty"`
	IP         string              `json:"ip"`
	PHPVersion string              `json:"php_version,omitempty"`
	SSLCert    string              `json:"ssl_cert,omitempty"`
	SSLKey     string              `json:"ssl_key,omitempty"`
	SSLExpires *time.Time          `json:"ssl_expires,omitempty"`
	VHosts     []generator.Preview `json:"vhosts"`
}

func runShow(cmd *cobra.Command, args []string) error {
	name := args[0]
	if err := validateSiteName(name); err != nil {
		return err
	}
	if showKind != "" {
		if _, err := driver.Lookup(showKind); err != nil {
			return err
		}
	}

	cfg, osKey, p, err := loadPlatform()
	if err != nil {
		return err
	}
	site, err := cfg.GetSite(name)
	if err != nil {
		return err
	}

	gen, err := generator.New(cfg, osKey, generator.Options{Logger: log})
	if err != nil {
		return err
	}
	previews, err := gen.RenderSite(name, showKind)
	if err != nil {
		return err
	}

	ip, err := hosts.ResolveIP(cfg, site)
	if err != nil {
		output.Warn("%v", err)
	}
	cert := p.CertFor(site)
	detail := showDetail{
		Name:       site.Name,
		Root:       generator.DocumentRoot(p, site, osKey),
		Aliases:    site.Aliases,
		IP:         ip,
		PHPVersion: site.PHP,
		SSLCert:    cert.Cert,
		SSLKey:     cert.Key,
		VHosts:     previews,
	}
	if cert.Cert != "" {
		if info, err := ssl.Inspect(cert.Cert, cert.Key); err == nil {
			detail.SSLExpires = &info.NotAfter
		}
	}

	if jsonOutput {
		return output.JSON(detail)
	}

	output.Print("")
	output.Print("Name:       %s", detail.Name)
	output.Print("Root:       %s", detail.Root)
	if len(detail.Aliases) > 0 {
		output.Print("Aliases:    %s", strings.Join(detail.Aliases, " "))
	}
	output.Print("IP:         %s", detail.IP)
	if detail.PHPVersion != "" {
		output.Print("PHP:        %s", detail.PHPVersion)
	}
	if detail.SSLCert != "" {
		output.Print("SSL:")
		output.Print("  Cert:     %s", detail.SSLCert)
		output.Print("  Key:      %s", detail.SSLKey)
		if detail.SSLExpires != nil {
			output.Print("  Expires:  %s", detail.SSLExpires.Format("2006-01-02"))
		}
	}

	for _, pv := range previews {
		output.Print("")
		output.Heading(fmt.Sprintf("%s vhost", pv.Kind))
		output.Print("# %s", pv.Path)
		output.Print("%s", strings.TrimRight(pv.Content, "\n"))
	}
	output.Print("")
	return nil
}
