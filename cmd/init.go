package cmd

import (
	"errors"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/duke-git/lancet/v2/fileutil"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// initCmd represents the init command.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the configuration",
	Long:  "Initialize the hashquarry configuration.\nPrompts for the hash file path and worker count and writes them to the config file.",
	Run:   initializePrompts(),
}

// initializePrompts returns the Run function for the init command. It prompts
// for the hash file path and worker count and writes the configuration file.
func initializePrompts() func(cmd *cobra.Command, args []string) {
	return func(_ *cobra.Command, _ []string) {
		if err := promptForHashFile(); err != nil {
			return
		}

		if err := promptForWorkers(); err != nil {
			return
		}

		if err := viper.SafeWriteConfig(); err != nil {
			if err := viper.WriteConfig(); err != nil {
				log.Errorf("Failed to write config file: %v", err)
			}
		}
	}
}

// promptForHashFile prompts for the path of the hash file and stores it in the configuration.
func promptForHashFile() error {
	prompt := promptui.Prompt{
		Label: "Enter the path to the file containing target hash values",
		Validate: func(input string) error {
			if fileutil.IsExist(input) {
				return nil
			}

			return errors.New("file not found")
		},
	}

	hashFile, err := prompt.Run()
	if err != nil {
		log.Errorf("Prompt failed %v\n", err)

		return err
	}

	viper.Set("hash_file", hashFile)

	return nil
}

// promptForWorkers prompts for the number of worker goroutines and stores it in the configuration.
func promptForWorkers() error {
	prompt := promptui.Prompt{
		Label:   "Enter the number of workers to use",
		Default: strconv.Itoa(viper.GetInt("workers")),
		Validate: func(input string) error {
			n, err := strconv.Atoi(input)
			if err != nil || n < 1 {
				return errors.New("invalid worker count")
			}

			return nil
		},
	}

	workers, err := prompt.Run()
	if err != nil {
		log.Errorf("Prompt failed %v\n", err)

		return err
	}

	n, err := strconv.Atoi(workers)
	if err != nil {
		return err
	}

	viper.Set("workers", n)

	return nil
}

// init adds the initCmd command to the rootCmd command.
func init() {
	rootCmd.AddCommand(initCmd)
}
