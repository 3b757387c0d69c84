// Command nagcfg renders Nagios host and service definitions from templates.
package main

import "github.com/cameronsjo/nagcfg/internal/cmd"

func main() {
	cmd.Execute()
}
