package main

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/planwise/benefitsim/internal/calculation"
	"github.com/planwise/benefitsim/internal/compare"
	"github.com/planwise/benefitsim/internal/config"
	"github.com/planwise/benefitsim/internal/domain"
	"github.com/planwise/benefitsim/internal/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "benefitsim",
	Short: "Health insurance benefit cost simulator",
	Long:  "Estimates a member's annual healthcare utilization and compares the true annual cost of candidate insurance policies",
}

var estimateCmd = &cobra.Command{
	Use:   "estimate [input-file]",
	Short: "Estimate annual utilization and risk from a health profile",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig(args[0])

		estimator := calculation.NewRiskEstimator()
		estimate := estimator.Estimate(cfg.Member)

		fmt.Printf("Risk score: %d (%s)\n", estimate.RiskScore, estimate.RiskLevel)
		fmt.Printf("Emergency risk: %s\n", estimate.EmergencyRisk.StringFixed(2))
		fmt.Println("\nRisk factors:")
		for _, f := range estimate.Factors {
			fmt.Printf("  %-32s %-10s %-9s +%d\n", f.Name, f.Category, f.Impact, f.Points)
		}
		fmt.Println("\nExpected annual utilization:")
		for _, cat := range domain.AllServiceCategories() {
			if count := estimate.Count(cat); count.IsPositive() {
				fmt.Printf("  %-26s %s\n", cat, count.StringFixed(1))
			}
		}
	},
}

var planCmd = &cobra.Command{
	Use:   "plan [input-file]",
	Short: "Generate the priced annual treatment plan for a health profile",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig(args[0])

		estimator := calculation.NewRiskEstimator()
		generator := calculation.NewTreatmentPlanGenerator()
		plan := generator.Generate(cfg.Member, estimator.Estimate(cfg.Member))

		fmt.Printf("%-44s %-22s %8s %10s %12s\n", "Item", "Category", "Freq/yr", "Unit $", "Annual $")
		for _, item := range plan.Items {
			fmt.Printf("%-44s %-22s %8s %10s %12s\n",
				item.Name, item.Category,
				item.AnnualFrequency.StringFixed(1),
				item.UnitCostEstimate.StringFixed(0),
				item.AnnualCost().StringFixed(0))
		}
		fmt.Printf("\nTreatments: $%s  Medications: $%s  Preventive: $%s  Total: $%s\n",
			plan.Totals.Treatments.StringFixed(0),
			plan.Totals.Medications.StringFixed(0),
			plan.Totals.Preventive.StringFixed(0),
			plan.Totals.Total.StringFixed(0))
		fmt.Printf("Chronic conditions: %t  Specialist care: %t  Emergency risk: %s\n",
			plan.HasChronicConditions, plan.RequiresSpecialistCare, plan.EmergencyRiskLevel)
	},
}

var simulateCmd = &cobra.Command{
	Use:   "simulate [input-file]",
	Short: "Simulate the treatment plan against one policy",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig(args[0])
		policyID, _ := cmd.Flags().GetString("policy")

		var policy *domain.InsurancePolicy
		for i := range cfg.Policies {
			if cfg.Policies[i].ID == policyID || policyID == "" {
				policy = &cfg.Policies[i]
				break
			}
		}
		if policy == nil {
			log.Fatalf("policy %q not found in %s", policyID, args[0])
		}

		plan := buildPlan(cfg)
		simulator := calculation.NewBenefitSimulator()
		analysis, err := simulator.Simulate(*policy, plan, cfg.FamilySize)
		if err != nil {
			log.Fatal(err)
		}

		tf := &compare.TableFormatter{}
		fmt.Print(tf.FormatAnalysis(&analysis))

		if trace, _ := cmd.Flags().GetBool("trace"); trace {
			fmt.Println("\nLedger:")
			for _, entry := range analysis.Ledger {
				fmt.Printf("  %-44s %-22s owed $%10s  ded $%10s  oop $%10s\n",
					entry.Name, entry.Category,
					entry.MemberOwed.StringFixed(2),
					entry.DeductibleMet.StringFixed(2),
					entry.OOPMet.StringFixed(2))
			}
		}
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare [input-file]",
	Short: "Compare all candidate policies against the treatment plan",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig(args[0])
		result := runComparison(cfg)

		format, _ := cmd.Flags().GetString("format")
		switch format {
		case "json":
			jf := &compare.JSONFormatter{Pretty: true}
			out, err := jf.Format(result)
			if err != nil {
				log.Fatal(err)
			}
			fmt.Println(out)
		case "csv":
			cf := &compare.CSVFormatter{}
			out, err := cf.Format(result)
			if err != nil {
				log.Fatal(err)
			}
			fmt.Print(out)
		default:
			tf := &compare.TableFormatter{}
			fmt.Print(tf.Format(result))
		}
	},
}

var browseCmd = &cobra.Command{
	Use:   "browse [input-file]",
	Short: "Browse comparison results interactively",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig(args[0])
		result := runComparison(cfg)

		program := tea.NewProgram(tui.New(result), tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			log.Fatal(err)
		}
	},
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(os.Stdout, "benefitsim %s (commit %s, built %s)\n", version, commit, date)
			if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
				fmt.Fprintln(os.Stdout, bi.Main.Version)
			}
		},
	}
}

func loadConfig(path string) *config.Configuration {
	parser := config.NewInputParser()
	cfg, err := parser.LoadFromFile(path)
	if err != nil {
		log.Fatal(err)
	}
	return cfg
}

func buildPlan(cfg *config.Configuration) domain.TreatmentPlan {
	estimator := calculation.NewRiskEstimator()
	generator := calculation.NewTreatmentPlanGenerator()
	return generator.Generate(cfg.Member, estimator.Estimate(cfg.Member))
}

func runComparison(cfg *config.Configuration) *compare.ComparisonResult {
	engine := compare.NewCompareEngine()
	result, err := engine.Compare(cfg.Policies, buildPlan(cfg), cfg.FamilySize)
	if err != nil {
		log.Fatal(err)
	}
	return result
}

func main() {
	simulateCmd.Flags().String("policy", "", "Policy ID to simulate (defaults to the first policy)")
	simulateCmd.Flags().Bool("trace", false, "Print the per-item replay ledger")
	compareCmd.Flags().String("format", "table", "Output format: table, json, or csv")

	rootCmd.AddCommand(estimateCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
