package content

// ExampleYAML is the starter document written by `waypoint init`.
const ExampleYAML = `# Onboarding content for waypoint.
app_name: Acme CLI
accent: "#6366f1"

# Shown the first time the application runs.
pages:
  - title: Welcome to Acme
    description: |
      Acme keeps your **projects** in sync across machines.
    icon: symbol:sparkles
  - title: Stay in the loop
    description: Get notified when a teammate shares a project with you.
    icon: symbol:bell
    icon_color: "#f59e0b"
    action_title: Enable Notifications
    action:
      name: log
      args:
        message: notifications enabled
  - title: You're all set
    description: Run ` + "`acme help`" + ` any time to see what you can do.
    icon: symbol:check

# Shown once after every upgrade.
features:
  - title: Faster sync
    description: Large projects now sync up to 3x faster.
    icon: symbol:bolt
  - title: Offline mode
    description: Keep working without a connection; changes sync later.
    icon: symbol:cloud
    background: "#1e293b"
`
