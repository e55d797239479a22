// Copyright (C) 2024 Tim Bastin, l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package commands

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "partchain-cli",
	Short: "Management cli",
	Long:  `The partchain cli runs maintenance tasks against the databases and the ledger of a partchain deployment.`,
}

func init() {
	rootCmd.PersistentFlags().String("identities", "", "Path of the identities file, overrides HLF_IDENTITIES_FILE_PATH")
	rootCmd.PersistentFlags().String("channel", "", "Default channel, overrides HLF_NETWORK_CHANNEL_NAME")
}

func GetRootCmd() *cobra.Command {
	return rootCmd
}
