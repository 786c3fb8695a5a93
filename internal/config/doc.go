// Package config loads the vhost configuration: platforms, server kinds,
// named servers and sites, stored in YAML format.
//
// The default location is ~/.config/vhost/config.yaml; every command accepts
// --config to point elsewhere.
//
// # Configuration Structure
//
// The main Config struct contains:
//   - The selected platform key (linux, mac, windows); empty means detected
//   - Global flags: force (overwrite generated files) and backup
//   - Named servers mapping a name to an IP for hosts entries
//   - One Platform section per OS with its server kinds
//   - The list of sites
//
// Example config.yaml:
//
//	os: linux
//	force: false
//	backup: true
//	default_ip: 127.0.0.1
//	servers:
//	  docker: 172.17.0.1
//	platforms:
//	  linux:
//	    root: /var/www
//	    hosts: /etc/hosts
//	    ssl:
//	      cert: /etc/ssl/certs/dev.pem
//	      key: /etc/ssl/private/dev.key
//	    apache:
//	      enabled: true
//	      config: /etc/apache2/apache2.conf
//	      output: /etc/apache2/vhosts
//	      logs: /var/log/apache2
//	      snippet: |
//	        IncludeOptional {{vhosts_dir}}/*.conf
//	sites:
//	  - name: example.test
//	    root: example/public
//	    aliases: [www.example.test]
//	    server: docker
//
// The hosts key accepts a single path or a list of paths.
//
// # Thread Safety
//
// Config operations are NOT thread-safe. Callers must implement their own
// synchronization if accessing Config from multiple goroutines.
package config
