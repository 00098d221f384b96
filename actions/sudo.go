package actions

import (
	"github.com/Songmu/prompter"

	"webup/monit/config"
	"webup/monit/domain"
)

// ResolveSudoPassword asks the sudo password when the config requires it.
func ResolveSudoPassword(c *domain.Config) {
	if c.SudoPassword == config.PromptSudoPassword {
		c.SudoPassword = prompter.Password("sudo password")
	}
}
