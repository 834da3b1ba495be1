package bloodlines

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/nonoumasy/bloodlines"
	"github.com/nonoumasy/bloodlines/pkg/config"
	"github.com/nonoumasy/bloodlines/pkg/extract"
	"github.com/nonoumasy/bloodlines/pkg/server/dto"
	"github.com/nonoumasy/bloodlines/pkg/tree"
)

var treeCmd = &cobra.Command{
	Use:   "tree <query|Qid>",
	Short: "Expand and render a genealogical tree",
	Long: `Expand the genealogical tree of a person. The argument is either a
knowledge-base identifier (Q<digits>) or a free-text query, in which
case the first matching human is used as the root.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTree,
}

var (
	treeDepth  int
	treeOutput string
)

func init() {
	rootCmd.AddCommand(treeCmd)

	treeCmd.Flags().IntVar(&treeDepth, "depth", tree.MaxDepth, fmt.Sprintf("expansion depth (max %d)", tree.MaxDepth))
	treeCmd.Flags().StringVar(&treeOutput, "output", "text", "output format (text, json, yaml)")
}

func runTree(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := buildLogger(cfg)
	svc := bloodlines.New(nil, cfg, log)
	defer svc.Close()

	ctx := cmd.Context()
	arg := strings.Join(args, " ")

	rootID := arg
	if !extract.ValidID(arg) {
		hits, err := svc.Search(ctx, arg)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}
		if len(hits) == 0 {
			return fmt.Errorf("no person found for %q", arg)
		}
		rootID = hits[0].ID
		log.Info("using first matching person", "id", rootID, "label", hits[0].Label)
	}

	node, err := svc.Tree(ctx, rootID, treeDepth)
	if err != nil {
		return fmt.Errorf("tree expansion failed: %w", err)
	}

	switch treeOutput {
	case "json":
		out, err := json.MarshalIndent(dto.FromNode(node), "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
	case "yaml":
		out, err := yaml.Marshal(dto.FromNode(node))
		if err != nil {
			return err
		}
		fmt.Print(string(out))
	case "text":
		printNode(node, "", "")
	default:
		return fmt.Errorf("unknown output format: %s", treeOutput)
	}
	return nil
}

// printNode renders one node and recurses into expanded relations.
func printNode(n *tree.Node, indent, relation string) {
	if n == nil {
		return
	}

	tag := ""
	if relation != "" {
		tag = relation + " "
	}

	switch n.Status {
	case tree.StatusReady:
		line := fmt.Sprintf("%s%s%s (%s)", indent, tag, n.Person.Label, n.ID)
		if span := n.Person.Lifespan(); span != "" {
			line += "  " + span
		}
		if badge := n.Person.AgeBadge(); badge != "" {
			line += "  [" + badge + "]"
		}
		fmt.Println(line)

		if len(n.Parents) == 0 && n.ParentCount() > 0 {
			fmt.Printf("%s  %d more ancestor(s) beyond depth limit\n", indent, n.ParentCount())
		}
		if len(n.Children) == 0 && n.ChildCount() > 0 {
			fmt.Printf("%s  %d more descendant(s) beyond depth limit\n", indent, n.ChildCount())
		}
	case tree.StatusFailed:
		fmt.Printf("%s%s%s (couldn't load)\n", indent, tag, n.ID)
	case tree.StatusCancelled:
		return
	default:
		fmt.Printf("%s%s%s (loading)\n", indent, tag, n.ID)
	}

	for _, p := range n.Parents {
		printNode(p, indent+"  ", "parent:")
	}
	for _, c := range n.Children {
		printNode(c, indent+"  ", "child:")
	}
}
