// Package templates provides file templates for shipcheck project initialization.
package templates

import (
	"bytes"
	"text/template"
)

// ChecklistData contains data for the starter checklist template.
type ChecklistData struct {
	// Project names the checklist; defaults to "django" when empty.
	Project string
	// Domain is the production host the site will serve; when set, the
	// allowed-hosts step pins ALLOWED_HOSTS to it.
	Domain string
}

// checklistTemplateStr is the starter checklist for deploying a Django
// site to a shared host. The steps and their order follow the usual
// subdomain rollout: prepare the code, configure settings, create the
// server-side app, then run the release commands.
const checklistTemplateStr = `version: 1
name: {{.Project}}-deploy
description: Readiness checklist for deploying {{.Project}} to a shared host
steps:
  - id: deps:freeze
    description: Freeze dependencies into requirements.txt
    action: pip freeze > requirements.txt
    requires:
      - key: has_requirements_file
        op: equals
        value: "true"
      - key: requirements.pinned
        op: equals
        value: "true"

  - id: settings:allowed-hosts
    description: Add the production domain to ALLOWED_HOSTS
    requires:
      - key: env.ALLOWED_HOSTS
{{- if .Domain}}
        op: equals
        value: {{.Domain}}
{{- else}}
        op: exists
{{- end}}

  - id: settings:static-root
    description: Point STATIC_ROOT at the collected static directory
    requires:
      - key: django.static_root_configured
        op: equals
        value: "true"

  - id: settings:whitenoise
    description: Serve static files through WhiteNoise middleware
    requires:
      - key: python.package.whitenoise
        op: exists

  - id: server:subdomain
    description: Create the subdomain in the hosting control panel
    requires:
      - key: server.subdomain_created
        op: equals
        value: "true"

  - id: server:python-app
    description: Create the Python application for the subdomain
    requires:
      - key: server.python_app_created
        op: equals
        value: "true"
      - key: python.version
        op: at-least
        value: "3.9"

  - id: server:wsgi
    description: Provide the passenger_wsgi.py entry point
    requires:
      - key: has_passenger_wsgi
        op: equals
        value: "true"

  - id: deps:install
    description: Install the pinned requirements on the server
    action: pip install -r requirements.txt
    requires:
      - key: server.requirements_installed
        op: equals
        value: "true"

  - id: db:migrate
    description: Apply database migrations
    action: python manage.py migrate
    requires:
      - key: server.migrations_applied
        op: equals
        value: "true"

  - id: static:collect
    description: Collect static files into STATIC_ROOT
    action: python manage.py collectstatic --noinput
    requires:
      - key: server.static_collected
        op: equals
        value: "true"
`

// GenerateChecklist renders the starter checklist for a project.
func GenerateChecklist(data ChecklistData) (string, error) {
	if data.Project == "" {
		data.Project = "django"
	}

	tmpl, err := template.New("checklist").Parse(checklistTemplateStr)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// SnapshotExample is a filled-in snapshot matching the starter
// checklist, showing every fact the checklist compares in its ready
// state. Operators copy it and flip values to mirror their server.
const SnapshotExample = `# Environment snapshot for a shipcheck run.
# Capture one with: shipcheck snapshot capture --project . > snapshot.yaml
has_requirements_file: "true"
requirements.pinned: "true"
has_passenger_wsgi: "true"
env.ALLOWED_HOSTS: app.example.com
django.static_root_configured: "true"
python.package.whitenoise: "6.6.0"
python.version: "3.11.4"
server.subdomain_created: "true"
server.python_app_created: "true"
server.requirements_installed: "true"
server.migrations_applied: "true"
server.static_collected: "true"
`
