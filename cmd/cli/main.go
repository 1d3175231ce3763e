// Package main implements the CookPro CLI for searching recipes and managing
// comments from the command line.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cookpro/cookpro/internal/catalog"
	"github.com/cookpro/cookpro/internal/comments"
	"github.com/cookpro/cookpro/internal/kv"
	"github.com/cookpro/cookpro/internal/libs/config"
	"github.com/cookpro/cookpro/internal/libs/obs"
	"github.com/cookpro/cookpro/internal/search"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	obs.InitLogger("error")

	root := &cobra.Command{Use: "cookpro", Short: "CookPro recipe search and comments"}
	root.AddCommand(searchCmd(cfg))
	root.AddCommand(commentsCmd(cfg))
	root.AddCommand(topCmd(cfg))

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	return catalog.LoadFile(cfg.CatalogPath)
}

func openComments(cfg *config.Config) (*comments.Store, func(), error) {
	backend, err := kv.NewFile(cfg.DataDir)
	if err != nil {
		return nil, nil, err
	}
	store := comments.NewStore(backend, obs.Logger("comments"))
	return store, func() { _ = backend.Close() }, nil
}

func searchCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search recipes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog(cfg)
			if err != nil {
				return err
			}
			engine := search.New(cat, obs.Logger("search"))
			defer func() { _ = engine.Close() }()

			res := engine.Query(strings.Join(args, " "))
			if res.Idle {
				fmt.Println("Start typing to search recipes...")
				return nil
			}
			if len(res.Recipes) == 0 {
				fmt.Println("No matching recipes found.")
				return nil
			}
			for _, r := range res.Recipes {
				fmt.Printf("%-30s %s\n", r.Slug(), r.Time)
			}
			if len(res.More) > 0 {
				fmt.Printf("...and %d more\n", len(res.More))
			}
			return nil
		},
	}
}

func commentsCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{Use: "comments", Short: "Manage recipe comments"}

	var name, image string
	add := &cobra.Command{
		Use:   "add <recipe-slug> <text>",
		Short: "Post a comment on a recipe",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := openComments(cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			c, err := store.Create(context.Background(), args[0], name, strings.Join(args[1:], " "), image)
			if err != nil {
				return err
			}
			fmt.Printf("posted %s\n", c.ID)
			return nil
		},
	}
	add.Flags().StringVar(&name, "name", "", "display name (defaults to Anonymous)")
	add.Flags().StringVar(&image, "image", "", "image attachment as a data URL")

	like := &cobra.Command{
		Use:   "like <comment-id>",
		Short: "Like a comment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := openComments(cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			c, err := store.Like(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s now has %d likes\n", c.ID, c.Likes)
			return nil
		},
	}

	list := &cobra.Command{
		Use:   "list <recipe-slug>",
		Short: "List a recipe's comments, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := openComments(cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			all, err := store.ListForRecipe(context.Background(), args[0])
			if err != nil {
				return err
			}
			if len(all) == 0 {
				fmt.Println("No comments yet.")
				return nil
			}
			for _, c := range all {
				printComment(c)
			}
			return nil
		},
	}

	var limit int
	top := &cobra.Command{
		Use:   "top <recipe-slug>",
		Short: "Show a recipe's top comments from today",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := openComments(cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			topList, err := store.TopToday(context.Background(), args[0], limit)
			if err != nil {
				return err
			}
			if len(topList) == 0 {
				fmt.Println("No top comments for today.")
				return nil
			}
			for _, c := range topList {
				printComment(c)
			}
			return nil
		},
	}
	top.Flags().IntVar(&limit, "limit", 3, "maximum comments to show")

	cmd.AddCommand(add, like, list, top)
	return cmd
}

func topCmd(cfg *config.Config) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "top",
		Short: "Show today's top comments across all recipes",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := openComments(cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			topList, err := store.GlobalTopToday(context.Background(), limit)
			if err != nil {
				return err
			}
			if len(topList) == 0 {
				fmt.Println("No top comments today.")
				return nil
			}
			for _, c := range topList {
				fmt.Printf("[%s] ", c.Recipe)
				printComment(c)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "maximum comments to show")
	return cmd
}

func printComment(c comments.Comment) {
	fmt.Printf("%s (%d likes, %s): %s\n", c.Name, c.Likes, c.CreatedAt.Format("2006-01-02 15:04"), c.Text)
}
