package actions

import (
	"io"

	"webup/monit/domain"
	"webup/monit/tasks"
)

// RenderActionHandler prints the monit config 'name' as it would be installed.
func RenderActionHandler(out io.Writer, renderer domain.Renderer, ctx domain.ExecutionContext, name string) error {
	content, err := renderer.Render(tasks.TemplateID(name), ctx)
	if err != nil {
		return err
	}

	_, err = out.Write(content)
	return err
}
