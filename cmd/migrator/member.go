package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/georgevetticaden/ios-to-android-migration-assitant-agent-sub000/internal/store"
)

var addMemberAge int

var addMemberCmd = &cobra.Command{
	Use:   "add-member MIGRATION_ID NAME ROLE",
	Short: "Add a family member to a migration (T2 add_family_member)",
	Long:  "ROLE is one of: spouse, child, other.",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		migrationID, name, role := args[0], args[1], store.Role(args[2])

		var age *int
		if cmd.Flags().Changed("age") {
			a := addMemberAge
			age = &a
		}

		s, cleanup, err := openSurface(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		res := s.AddFamilyMember(cmd.Context(), migrationID, name, role, age)
		_ = recordCall("add_family_member", migrationID,
			map[string]any{"name": name, "role": role, "age": age},
			res.Success, string(res.Error), res.Message)

		if !res.Success {
			return fmt.Errorf("%s: %s", res.Error, res.Message)
		}
		fmt.Printf("family member %s added as %s\n", res.MemberID, name)
		return nil
	},
}

var membersCmd = &cobra.Command{
	Use:   "members MIGRATION_ID [FILTER]",
	Short: "List family members, optionally filtered (T6 get_family_members)",
	Long:  "FILTER is one of: all, not_in_messaging_group, not_sharing_location, teen, no_contact_handle.",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		migrationID := args[0]
		filter := store.FilterAll
		if len(args) == 2 {
			filter = store.Filter(args[1])
		}

		s, cleanup, err := openSurface(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		res := s.GetFamilyMembers(cmd.Context(), migrationID, filter)
		_ = recordCall("get_family_members", migrationID, map[string]any{"filter": filter},
			res.Success, string(res.Error), res.Message)

		if !res.Success {
			return fmt.Errorf("%s: %s", res.Error, res.Message)
		}
		for _, m := range res.Members {
			fmt.Printf("%s\t%s\t%s\n", m.ID, m.Name, m.Role)
			for service, adoption := range m.Adoptions {
				fmt.Printf("  %s: %s\n", service, adoption.Status)
			}
		}
		return nil
	},
}

var appsCmd = &cobra.Command{
	Use:   "apps MIGRATION_ID MEMBER_NAME SERVICE STATUS",
	Short: "Update a family member's app adoption status (T4 update_family_member_apps)",
	Long:  "SERVICE is one of: Messaging, Location, Payments. STATUS is one of: not_started, invited, installed, configured.",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		migrationID, memberName := args[0], args[1]
		service := store.Service(args[2])
		status := store.AdoptionStatus(args[3])

		s, cleanup, err := openSurface(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		res := s.UpdateFamilyMemberApps(cmd.Context(), migrationID, memberName, service, status, nil)
		_ = recordCall("update_family_member_apps", migrationID,
			map[string]any{"member_name": memberName, "service": service, "status": status},
			res.Success, string(res.Error), res.Message)

		if !res.Success {
			return fmt.Errorf("%s: %s", res.Error, res.Message)
		}
		fmt.Println("ok")
		return nil
	},
}

func init() {
	addMemberCmd.Flags().IntVar(&addMemberAge, "age", 0, "family member's age, required for the teen filter to apply")
	rootCmd.AddCommand(addMemberCmd, membersCmd, appsCmd)
}
