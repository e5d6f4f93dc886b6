package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/yatube/yatube/internal/auth"
	"github.com/yatube/yatube/internal/db"
	"github.com/yatube/yatube/internal/forms"
	"github.com/yatube/yatube/internal/models"
	"github.com/yatube/yatube/internal/store"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Bring the database schema up to date",
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := openDB()
		if err != nil {
			return err
		}
		defer database.Close()

		return database.Migrate()
	},
}

var groupCmd = &cobra.Command{
	Use:   "group",
	Short: "Manage post groups",
}

var (
	groupTitle       string
	groupSlug        string
	groupDescription string
)

var groupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a group",
	RunE: func(cmd *cobra.Command, args []string) error {
		if groupTitle == "" || groupSlug == "" {
			return errors.New("--title and --slug are required")
		}

		database, err := openDB()
		if err != nil {
			return err
		}
		defer database.Close()

		group := &models.Group{Title: groupTitle, Slug: groupSlug, Description: groupDescription}
		if err := db.NewRepository(database.DB).Groups().Create(cmd.Context(), group); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				return fmt.Errorf("a group with slug %q already exists", groupSlug)
			}
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created group %d (%s)\n", group.ID, group.Slug)
		return nil
	},
}

var groupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List groups",
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := openDB()
		if err != nil {
			return err
		}
		defer database.Close()

		groups, err := db.NewRepository(database.DB).Groups().List(cmd.Context())
		if err != nil {
			return err
		}

		if len(groups) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No groups yet")
			return nil
		}

		table := tablewriter.NewWriter(cmd.OutOrStdout())
		table.SetAutoWrapText(false)
		table.SetHeader([]string{"ID", "Slug", "Title"})
		for _, g := range groups {
			table.Append([]string{strconv.FormatInt(g.ID, 10), g.Slug, g.Title})
		}
		table.Render()
		return nil
	},
}

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage users",
}

var (
	userName     string
	userPassword string
	userFirst    string
	userLast     string
	userEmail    string
)

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		if userPassword == "" {
			userPassword = os.Getenv("YATUBE_NEW_USER_PASSWORD")
		}

		in := forms.SignupInput{
			FirstName:       userFirst,
			LastName:        userLast,
			Username:        userName,
			Email:           userEmail,
			Password:        userPassword,
			PasswordConfirm: userPassword,
		}
		if errs := in.Validate(); errs.Any() {
			return errs
		}

		database, err := openDB()
		if err != nil {
			return err
		}
		defer database.Close()

		hash, err := auth.HashPassword(in.Password)
		if err != nil {
			return err
		}
		user := &models.User{
			Username:     in.Username,
			PasswordHash: hash,
			FirstName:    in.FirstName,
			LastName:     in.LastName,
			Email:        in.Email,
			CreatedAt:    time.Now().UTC(),
		}
		if err := db.NewRepository(database.DB).Users().Create(cmd.Context(), user); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				return fmt.Errorf("user %q already exists", in.Username)
			}
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created user %d (%s)\n", user.ID, user.Username)
		return nil
	},
}

func init() {
	groupCreateCmd.Flags().StringVar(&groupTitle, "title", "", "group title")
	groupCreateCmd.Flags().StringVar(&groupSlug, "slug", "", "unique URL key")
	groupCreateCmd.Flags().StringVar(&groupDescription, "description", "", "group description")
	groupCmd.AddCommand(groupCreateCmd, groupListCmd)

	userCreateCmd.Flags().StringVar(&userName, "username", "", "login name")
	userCreateCmd.Flags().StringVar(&userPassword, "password", "", "password (defaults to $YATUBE_NEW_USER_PASSWORD)")
	userCreateCmd.Flags().StringVar(&userFirst, "first-name", "", "first name")
	userCreateCmd.Flags().StringVar(&userLast, "last-name", "", "last name")
	userCreateCmd.Flags().StringVar(&userEmail, "email", "", "email address")
	userCmd.AddCommand(userCreateCmd)

	rootCmd.AddCommand(migrateCmd, groupCmd, userCmd)
}
