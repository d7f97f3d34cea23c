package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"

	"github.com/mydpo/mydpo/internal/audit"
	"github.com/mydpo/mydpo/internal/billing"
	"github.com/mydpo/mydpo/internal/chat"
	"github.com/mydpo/mydpo/internal/compliance"
	"github.com/mydpo/mydpo/internal/db"
	"github.com/mydpo/mydpo/internal/docgen"
	"github.com/mydpo/mydpo/internal/documents"
	"github.com/mydpo/mydpo/internal/incidents"
	"github.com/mydpo/mydpo/internal/knowledge"
	"github.com/mydpo/mydpo/internal/llm"
	"github.com/mydpo/mydpo/internal/notifications"
	"github.com/mydpo/mydpo/internal/orgs"
	"github.com/mydpo/mydpo/internal/profile"
	"github.com/mydpo/mydpo/internal/requests"
	"github.com/mydpo/mydpo/internal/server"
)

var serverPort int

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the compliance platform API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if serverPort == 0 {
			serverPort = cfg.Server.Port
		}

		database, err := db.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		provider, err := createLLMProvider(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: LLM provider unavailable: %v\n", err)
			fmt.Fprintln(os.Stderr, "Assistant and document refinement are disabled.")
		}

		var kb *knowledge.Store
		if provider != nil {
			kb, err = loadKnowledgeBase(cfg)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: knowledge base unavailable: %v\n", err)
			}
		}

		srv := server.New(server.Config{
			Port:     serverPort,
			AllowAll: cfg.Server.AllowAll,
		}, database)

		if err := registerAllRoutes(srv, database, provider, kb); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			srv.Shutdown(context.Background())
		}()

		fmt.Fprintf(os.Stderr, "mydpo server v%s starting on port %d\n", Version, serverPort)
		fmt.Fprintf(os.Stderr, "  Database: %s\n", cfg.DBPath)
		if kb != nil {
			fmt.Fprintf(os.Stderr, "  Guidance articles indexed: %d\n", kb.Count())
		}

		return srv.Start()
	},
}

// registerAllRoutes wires every feature package onto the server router.
func registerAllRoutes(srv *server.Server, database *db.DB, provider llm.Provider, kb *knowledge.Store) error {
	r := srv.Router()

	auditStore := audit.NewStore(database)
	audit.RegisterRoutes(r, auditStore)

	orgStore := orgs.NewStore(database)
	orgs.RegisterRoutes(r, orgStore)

	profiles := profile.NewStore(database)
	profile.RegisterRoutes(r, profiles, auditStore)

	docs := documents.NewStore(database)
	documents.RegisterRoutes(r, docs, auditStore)

	notifStore := notifications.NewStore(database)
	dispatcher := notifications.NewDispatcher(notifStore)
	notifications.RegisterRoutes(r, notifStore)

	incidentStore := incidents.NewStore(database)
	incidents.RegisterRoutes(r, incidentStore, auditStore, dispatcher)

	requestStore := requests.NewStore(database)
	requests.RegisterRoutes(r, requestStore, auditStore, dispatcher)

	billingStore := billing.NewStore(database)
	billing.RegisterRoutes(r, billingStore, auditStore)

	custom, err := compliance.NewCustomEngine()
	if err != nil {
		return fmt.Errorf("creating rule engine: %w", err)
	}
	ruleStore := compliance.NewRuleStore(database)
	service := compliance.NewService(profiles, docs, incidentStore, ruleStore, custom)
	compliance.RegisterRoutes(r, service, ruleStore, custom)

	gen := docgen.NewGenerator(provider)
	docgen.RegisterRoutes(r, gen, orgStore, profiles, docs, auditStore)

	if kb != nil {
		knowledge.RegisterRoutes(r, kb)
	}

	// AI surface is gated behind the starter plan.
	if provider != nil {
		chatStore := chat.NewStore(database)
		var searcher chat.Searcher
		if kb != nil {
			searcher = kb
		}
		assistant := chat.NewAssistant(provider, chatStore, searcher, service)
		r.Group(func(r chi.Router) {
			r.Use(billing.RequirePlan(billingStore, billing.PlanStarter))
			chat.RegisterRoutes(r, assistant, chatStore)
		})
	}

	return nil
}

func init() {
	serverCmd.Flags().IntVar(&serverPort, "port", 0, "Port to listen on (defaults to config)")
	rootCmd.AddCommand(serverCmd)
}
